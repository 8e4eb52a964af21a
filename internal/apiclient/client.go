package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	"github.com/pkg/errors"
)

// ErrUnauthorized is returned for any 401 from the remote API so that
// admin pages can end the session and force a fresh login instead of
// showing an undifferentiated load failure.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// Client is a thin typed wrapper around the remote catalog/back-office
// REST API. It performs no retries and no caching; every call is a
// single bounded HTTP round-trip.
type Client struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) url(format string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func bearer(token string) gout.H {
	return gout.H{"Authorization": "Bearer " + token}
}

// run executes a prepared dataflow with the client timeout applied and
// decodes the response into out on success. Non-2xx statuses become
// errors; the body of a failed call is discarded.
func (c *Client) run(ctx context.Context, flow *dataflow.DataFlow, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var code int
	err := flow.WithContext(ctx).
		Callback(func(rc *dataflow.Context) error {
			code = rc.Code
			if code >= http.StatusOK && code < http.StatusMultipleChoices && out != nil {
				// BindJSON queues the decode; its failure surfaces
				// from Do, not here
				rc.BindJSON(out)
			}
			return nil
		}).
		Do()
	if err != nil {
		return errors.Wrap(err, "apiclient: request failed")
	}
	return statusError(code)
}

func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code < http.StatusOK || code >= http.StatusMultipleChoices:
		return errors.Errorf("apiclient: unexpected status %d", code)
	}
	return nil
}
