package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream matches every *UpstreamError.
	ErrUpstream           = errors.New("billing provider request failed")
	ErrNoCheckoutURL      = errors.New("no checkout url in provider response")
	ErrUnknownPack        = errors.New("unknown pack")
	ErrBalanceUnsupported = errors.New("provider does not expose balance lookup")
)

// UpstreamError describes a provider call that failed in transport or came back
// with a non-2xx status. StatusCode is zero when no response arrived.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("autumn %s failed: %d %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("autumn %s failed: %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("autumn %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("autumn %s failed", e.Op)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
