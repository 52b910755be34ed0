package mkvinfo

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by NewProber.
const (
	BackendMKVMerge = "mkvmerge"
	BackendNative   = "native"
)

// Prober reads the track inventory of a container.
type Prober interface {
	Probe(ctx context.Context, path string) (Result, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, path string) (Result, error)

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, path string) (Result, error) {
	return f(ctx, path)
}

// NewProber returns the prober for backend. binary is only used by the
// mkvmerge backend.
func NewProber(backend, binary string) (Prober, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMKVMerge:
		return ProberFunc(func(ctx context.Context, path string) (Result, error) {
			return Identify(ctx, binary, path)
		}), nil
	case BackendNative:
		return ProberFunc(func(ctx context.Context, path string) (Result, error) {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			return ReadNative(path)
		}), nil
	default:
		return nil, fmt.Errorf("unknown probe backend %q", backend)
	}
}
