package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireContentType rejects requests whose media type is not mediaType with
// 415 Unsupported Media Type. Parameters such as charset are ignored.
func RequireContentType(mediaType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != mediaType {
			_ = c.Error(fmt.Errorf("invalid Content-Type: %q", c.GetHeader("Content-Type")))
			RespondWithError(c, http.StatusUnsupportedMediaType,
				fmt.Sprintf("Content-Type must be %s", mediaType))
			return
		}
		c.Next()
	}
}
