package domain

import "errors"

var (
	ErrUpstreamUnavailable = errors.New("upstream rate provider unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrUnknownProvider     = errors.New("unknown exchange rate provider")
)
