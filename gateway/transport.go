// Package gateway contains the typed HTTP clients for the two external
// collaborators: the box-office backend and the payment provider.
package gateway

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"boxoffice/pkg/log"
)

const sessionCookieName = "SESSION"

// Transport attaches the session cookie and correlation ID to every
// backend request, and reports authorization rejections (401/403) from
// any endpoint through onAuthError. The hook is the process-wide
// interception point the session guard listens on.
type Transport struct {
	base         http.RoundTripper
	sessionToken string
	onAuthError  func()
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: t.sessionToken})
	}
	if cid := log.CorrelationIDFromContext(req.Context()); cid != "" {
		req.Header.Set("Correlation-ID", cid)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if t.onAuthError != nil {
			t.onAuthError()
		}
	}

	return resp, nil
}

// NewBackendHTTPClient builds the instrumented client shared by all
// backend gateways.
func NewBackendHTTPClient(sessionToken string, onAuthError func()) *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: otelhttp.NewTransport(&Transport{
			base:         http.DefaultTransport,
			sessionToken: sessionToken,
			onAuthError:  onAuthError,
		}),
	}
}

// NewProviderHTTPClient builds the client for the payment provider. The
// provider has its own authentication; its 401s must not log the
// customer out of the storefront, so the auth hook is not installed.
func NewProviderHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
