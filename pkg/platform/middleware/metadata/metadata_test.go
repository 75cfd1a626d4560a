package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditarmor/pkg/requestcontext"
)

func TestResolverClientIP(t *testing.T) {
	resolver, err := NewResolver([]string{"10.0.0.0/24", " 192.0.2.50 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"untrusted peer ignores forwarded for", map[string]string{"X-Forwarded-For": "198.51.100.99"}, "203.0.113.7:41234", "203.0.113.7"},
		{"untrusted peer ignores real ip", map[string]string{"X-Real-IP": "198.51.100.99"}, "203.0.113.7:41234", "203.0.113.7"},
		{"trusted proxy forwards client", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.3:5000", "203.0.113.7"},
		{"trusted chain skips inner proxies", map[string]string{"X-Forwarded-For": "198.51.100.1, 203.0.113.7, 10.0.0.2"}, "10.0.0.3:5000", "203.0.113.7"},
		{"single trusted address", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "192.0.2.50:80", "198.51.100.4"},
		{"trusted proxy without headers", nil, "10.0.0.3:5000", "10.0.0.3"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", nil, "192.0.2.9", "192.0.2.9"},
		{"nothing known", nil, "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, resolver.ClientIP(req))
		})
	}
}

func TestNewResolverRejectsGarbage(t *testing.T) {
	_, err := NewResolver([]string{"10.0.0.0/99"})
	require.Error(t, err)
	_, err = NewResolver([]string{"proxy.internal"})
	require.Error(t, err)
}

func TestClientMetadata(t *testing.T) {
	var gotIP, gotUA string
	h := ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("User-Agent", "curl/8.4.0")
	req.Header.Set("X-Forwarded-For", "198.51.100.99")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.1", gotIP)
	assert.Equal(t, "curl/8.4.0", gotUA)
}
