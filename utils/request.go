package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type RestyClient struct {
	client *resty.Client
}

// NewRestyClient returns a client that retries transport errors and 429
// responses, honoring Retry-After when the server sends one.
func NewRestyClient(retryCount int) *RestyClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(retryCount).
		SetRetryWaitTime(time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
					if t, err := http.ParseTime(retryAfter); err == nil {
						return time.Until(t), nil
					}
				}
				return time.Second, nil
			}
			return 0, nil
		}).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests
		})
	return &RestyClient{client: client}
}

func (c *RestyClient) R() *resty.Request {
	return c.client.R().SetLogger(disableLogger{}).SetHeader("User-Agent", "sse-journal")
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}
