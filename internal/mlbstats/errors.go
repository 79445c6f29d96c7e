package mlbstats

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure. The retry policy decides retryability
// from it; the orchestrator decides whether a task is Failed or Empty.
type Kind int

const (
	KindRateLimited Kind = iota
	KindTimeout
	KindServerError
	KindNoData
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindServerError:
		return "server_error"
	case KindNoData:
		return "no_data"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is the typed failure returned by the client.
type FetchError struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch failed (%s, status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s, status %d)", e.Kind, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err wraps a FetchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
