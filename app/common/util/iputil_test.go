package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		forwarded  string
		realIp     string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.7", "", "10.0.0.1:4567", "203.0.113.7"},
		{"forwarded chain takes first", "203.0.113.7, 10.0.0.2", "", "10.0.0.1:4567", "203.0.113.7"},
		{"real ip fallback", "", "198.51.100.9", "10.0.0.1:4567", "198.51.100.9"},
		{"remote addr fallback", "", "", "192.0.2.4:8080", "192.0.2.4"},
		{"remote addr without port", "", "", "192.0.2.4", "192.0.2.4"},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tc.remoteAddr
		if tc.forwarded != "" {
			r.Header.Set("X-Forwarded-For", tc.forwarded)
		}
		if tc.realIp != "" {
			r.Header.Set("X-Real-Ip", tc.realIp)
		}
		if got := ClientIP(r); got != tc.want {
			t.Fatalf("%s: ClientIP = %q, want %q", tc.name, got, tc.want)
		}
	}
}
