package requestmeta

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"
)

func TestIsHTTSPWithPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tls    bool
		proto  string
		policy SchemePolicy
		want   bool
	}{
		{name: "plain http", want: false},
		{name: "tls request", tls: true, want: true},
		{name: "forwarded proto ignored by default", proto: "https", want: false},
		{name: "forwarded proto trusted", proto: "https", policy: SchemePolicy{TrustForwardedProto: true}, want: true},
		{name: "forwarded http trusted", proto: "http", policy: SchemePolicy{TrustForwardedProto: true}, want: false},
		{name: "garbage forwarded proto", proto: "gopher", policy: SchemePolicy{TrustForwardedProto: true}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			if tc.tls {
				req.TLS = &tls.ConnectionState{}
			}
			if tc.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tc.proto)
			}
			if got := IsHTTPSWithPolicy(req, tc.policy); got != tc.want {
				t.Fatalf("IsHTTPSWithPolicy = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsHTTPSNilRequest(t *testing.T) {
	t.Parallel()

	if IsHTTPS(nil) {
		t.Fatal("expected nil request to be non-HTTPS")
	}
}
