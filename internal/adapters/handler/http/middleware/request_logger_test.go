package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		user      string
		wantLevel string
	}{
		{name: "Success is info", status: http.StatusOK, user: "user-1", wantLevel: "INFO"},
		{name: "Client error is warn", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "Server error is error", status: http.StatusServiceUnavailable, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.user != "" {
					c.Set(ContextUserIDKey, tt.user)
				}
				c.Next()
			})
			router.Use(RequestLogger(logger))
			router.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			router.ServeHTTP(w, req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/x", entry["path"])
			assert.EqualValues(t, tt.status, entry["status"])
			if tt.user != "" {
				assert.Equal(t, tt.user, entry["user_id"])
			} else {
				assert.NotContains(t, entry, "user_id")
			}
		})
	}
}
