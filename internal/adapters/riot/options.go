package riot

import (
	"net/http"
	"time"

	"github.com/okian/spelltimer/pkg/logger"
)

// Option configures a Client or a ChampionLoader.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     logger.Logger
}

func defaultOptions() options {
	return options{
		timeout: 5 * time.Second,
		logger:  logger.Nop(),
	}
}

func (o options) client() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: o.timeout}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithTimeout bounds each request made by the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
