package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const frontend = "http://localhost:5173"

	cases := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		status      int
		allowOrigin string
	}{
		{name: "preflight", allowed: []string{frontend}, method: http.MethodOptions, origin: frontend, status: http.StatusNoContent, allowOrigin: frontend},
		{name: "upload", allowed: []string{frontend}, method: http.MethodPost, origin: frontend, status: http.StatusOK, allowOrigin: frontend},
		{name: "foreign origin", allowed: []string{frontend}, method: http.MethodPost, origin: "https://evil.example", status: http.StatusOK},
		{name: "wildcard", allowed: []string{" * "}, method: http.MethodPost, origin: "https://hr.example", status: http.StatusOK, allowOrigin: "https://hr.example"},
		{name: "configured with slash", allowed: []string{frontend + "/"}, method: http.MethodPost, origin: frontend, status: http.StatusOK, allowOrigin: frontend},
		{name: "no origin", allowed: []string{frontend}, method: http.MethodPost, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tc.allowed))
			router.POST("/api/v1/analyses", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"success": true})
			})
			router.OPTIONS("/api/v1/analyses", func(c *gin.Context) {
				c.Status(http.StatusTeapot)
			})

			req := httptest.NewRequest(tc.method, "/api/v1/analyses", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if got := resp.Header().Get("Access-Control-Allow-Origin"); got != tc.allowOrigin {
				t.Fatalf("expected Allow-Origin %q, got %q", tc.allowOrigin, got)
			}
			if tc.allowOrigin == "" {
				return
			}
			if resp.Header().Get("Access-Control-Allow-Methods") == "" || resp.Header().Get("Access-Control-Allow-Headers") == "" {
				t.Fatalf("expected allow headers")
			}
			if got := resp.Header().Get("Access-Control-Max-Age"); got != "600" {
				t.Fatalf("expected Max-Age 600, got %q", got)
			}
		})
	}
}
