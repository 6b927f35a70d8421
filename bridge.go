package seqconv

import (
	"errors"
	"log/slog"
)

// DefaultMaxReserve caps how many elements are reserved up front from a
// sequence's advisory length.
const DefaultMaxReserve = 4096

// Options are used to configure a Bridge.
type Options struct {
	// Host is the runtime the values belong to. Required.
	Host Host

	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// MaxReserve clamps the advisory length used to pre-size extracted
	// vectors. Defaults to DefaultMaxReserve.
	MaxReserve int
}

// Bridge converts between a host runtime's values and small vectors. It
// holds configuration only and may be shared.
type Bridge struct {
	host       Host
	logger     *slog.Logger
	maxReserve int
}

// NewBridge returns a Bridge configured with the given options.
func NewBridge(opts Options) (*Bridge, error) {
	if opts.Host == nil {
		return nil, errors.New("host required")
	}
	if opts.MaxReserve < 0 {
		return nil, errors.New("max reserve must not be negative")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxReserve == 0 {
		opts.MaxReserve = DefaultMaxReserve
	}
	return &Bridge{
		host:       opts.Host,
		logger:     opts.Logger,
		maxReserve: opts.MaxReserve,
	}, nil
}

// Host returns the runtime the bridge converts for.
func (b *Bridge) Host() Host {
	return b.host
}

// reserveHint turns an advisory length into a capacity to reserve.
func (b *Bridge) reserveHint(seq Sequence) int {
	n, err := seq.Len()
	if err != nil {
		b.logger.Debug("sequence length unavailable", slog.String("error", err.Error()))
		return 0
	}
	if n < 0 {
		return 0
	}
	return min(n, b.maxReserve)
}
