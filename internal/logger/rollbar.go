package logger

import (
	"net/http"

	"github.com/rollbar/rollbar-go"

	"tutordesk/internal/auth"
)

// Reporter forwards server errors to Rollbar. A nil *Reporter, or one built
// without a token, drops every report.
type Reporter struct {
	client *rollbar.Client
}

// NewReporter returns a Reporter for token. An empty token disables reporting.
func NewReporter(token, env, host string) *Reporter {
	if token == "" {
		return nil
	}
	client := rollbar.NewAsync(token, env, "", host, "")
	return &Reporter{client: client}
}

// Enabled reports whether errors are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.client != nil
}

// Report sends err with the request that caused it.
func (r *Reporter) Report(req *http.Request, err error) {
	if !r.Enabled() || err == nil {
		return
	}
	extras := map[string]interface{}{}
	if p, ok := auth.PrincipalFrom(req.Context()); ok {
		extras["user_id"] = p.ID
		extras["role"] = string(p.Role)
	}
	r.client.RequestErrorWithExtras(rollbar.ERR, req, err, extras)
}

// Close flushes pending reports.
func (r *Reporter) Close() {
	if !r.Enabled() {
		return
	}
	r.client.Wait()
	_ = r.client.Close()
}
