package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestAccountJSON(t *testing.T) {
	a := Account{
		ID:          7,
		Name:        "Joe",
		Email:       "joe@x.com",
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		DateJoined:  NewDate(2023, time.March, 4),
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":7,"name":"Joe","email":"joe@x.com","address":"1 Main St","phone_number":"555-0100","date_joined":"2023-03-04"}`,
		string(data))

	var back Account
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a, back)
}

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso date", input: `"2020-01-02"`, want: NewDate(2020, time.January, 2)},
		{name: "null", input: `null`, want: Date{}},
		{name: "empty string", input: `""`, want: Date{}},
		{name: "timestamp rejected", input: `"2020-01-02T10:00:00Z"`, wantErr: true},
		{name: "number rejected", input: `20200102`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2021, time.June, 5, 0, 0, 0, 0, time.FixedZone("x", 3600))))
	assert.Equal(t, "2021-06-05", d.String())

	require.NoError(t, d.Scan([]byte("2022-07-08")))
	assert.Equal(t, "2022-07-08", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2019, time.December, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2019-12-31", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
