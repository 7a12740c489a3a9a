package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_SecurityHeadersOnEveryResponse(t *testing.T) {
	a := newApp(t)
	id, token := a.register(t, "helmet")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"public health check", http.MethodGet, "/healthz", "", http.StatusOK},
		{"rejected before auth", http.MethodGet, fmt.Sprintf("/api/v1/players/%d", id), "", http.StatusUnauthorized},
		{"authenticated read", http.MethodGet, fmt.Sprintf("/api/v1/players/%d/inventory", id), token, http.StatusOK},
		{"failed login", http.MethodPost, "/auth/login", "", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/v1/nowhere", token, http.StatusNotFound},
	}

	expected := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body any
			if tt.method == http.MethodPost {
				body = map[string]string{"username": "helmet", "password": "wrong-password"}
			}
			rec := a.do(t, tt.method, tt.path, tt.token, body)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			for header, value := range expected {
				assert.Equal(t, value, rec.Header().Get(header), header)
			}
		})
	}
}
