// Package quotes loads the travel quotes shown on the async demo screen.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/netx"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

var ErrThrottled = errors.New("too many quote requests, try again shortly")

type Client struct {
	url     string
	http    *http.Client
	backoff func() retry.Backoff
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewClient returns a client for the quotes endpoint at url. Transient
// failures are retried twice with exponential backoff. Callers get three
// fetches at once and one more per second after that.
func NewClient(url string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:  logger.With("module", "quotes"),
	}
}

// Fetch returns every quote. ErrThrottled is returned without a request;
// every other failure wraps common.ErrNetwork and carries the underlying
// message.
func (c *Client) Fetch(ctx context.Context) ([]models.Quote, error) {
	if !c.limiter.Allow() {
		return nil, ErrThrottled
	}

	var out []models.Quote

	err := retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		out = nil
		err := netx.GetJSON(ctx, c.http, c.url, &out)
		if err == nil {
			return nil
		}

		var se *netx.StatusError
		if (errors.As(err, &se) && !se.Temporary()) || errors.Is(err, netx.ErrDecode) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		c.logger.Debug(ctx, "quotes fetch failed, retrying", "error", err)
		return retry.RetryableError(err)
	})
	if err != nil {
		c.logger.Warn(ctx, "quotes unavailable", "url", c.url, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}

	return out, nil
}
