package market

import (
	"errors"
	"fmt"

	"wealth/internal/core"
)

var (
	// ErrUpstreamUnreachable covers transport failures and non-2xx replies.
	ErrUpstreamUnreachable = errors.New("yahoo finance api error")
	// ErrSymbolNotFound means the upstream answered with an empty result set.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrMalformedResponse means the body could not be decoded or lacked the expected shape.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// MetalPriceError wraps any failure while pricing a metal.
type MetalPriceError struct {
	Metal core.Metal
	Err   error
}

func (e *MetalPriceError) Error() string {
	return fmt.Sprintf("failed to fetch %s price: %v", e.Metal, e.Err)
}

func (e *MetalPriceError) Unwrap() error { return e.Err }
