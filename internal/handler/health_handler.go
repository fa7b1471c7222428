package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "Account REST API Service"
	serviceVersion = "1.0"
)

// Index is the root probe. It names the service and points at the collection.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    serviceName,
		"version": serviceVersion,
		"paths":   absoluteURL(c, AccountsPath),
	})
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
