package celestial

import (
	"errors"
	"fmt"
)

// Closed set of upstream failure kinds. Handlers map these to HTTP statuses;
// anything else becomes a generic server error.
var (
	ErrRateLimited     = errors.New("upstream rate limited")
	ErrPaymentRequired = errors.New("upstream payment required")
)

// UpstreamError reports any other non-success response from the AI gateway.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}
