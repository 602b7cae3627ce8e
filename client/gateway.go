package client

import (
	"log/slog"
	"net/http"
)

// CredentialSource is the narrow view of the session store the transport
// needs: read the credential for header injection, clear it on 401.
type CredentialSource interface {
	Credential() (string, bool)
	Clear()
}

// authTransport decorates every outbound request so that call sites never
// deal with authorization plumbing. It injects the bearer header when a
// credential exists and tears the session down on any 401 before the
// response reaches the caller. Clearing is idempotent, so concurrent
// in-flight requests that all come back 401 produce one observable effect.
//
// The transport deliberately does not retry, rate-limit or cache.
type authTransport struct {
	base  http.RoundTripper
	creds CredentialSource
}

func newAuthTransport(base http.RoundTripper, creds CredentialSource) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, creds: creds}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if credential, ok := t.creds.Credential(); ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Debug("received 401, clearing session", "method", req.Method, "url", req.URL.Path)
		t.creds.Clear()
	}

	return resp, nil
}

var _ http.RoundTripper = (*authTransport)(nil)
