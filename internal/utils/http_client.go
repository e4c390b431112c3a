// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client that retries requests failing with a
// transport error, a 429 or a 5xx status up to retries times.
func NewHTTPClient(timeout time.Duration, retries int) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() == 429 || resp.StatusCode() >= 500
		})

	return &HTTPClient{Client: client}
}
