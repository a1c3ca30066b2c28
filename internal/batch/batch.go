// Package batch fans validation calls out to the API with bounded
// concurrency.
package batch

import (
	"context"
	"net/netip"
	"sync"

	"github.com/kvanhoose/ripestat"
	"github.com/kvanhoose/ripestat/internal/report"
)

const (
	// DefaultConcurrency is used when the caller does not pick one.
	DefaultConcurrency = 4

	// MaxConcurrency caps in-flight requests to stay polite to the
	// service.
	MaxConcurrency = 8
)

// Validator sweeps prefixes through the rpki-validation data call.
type Validator struct {
	client      *ripestat.Client
	concurrency int
}

// NewValidator creates a validator. Concurrency below 1 falls back to
// the default; values above MaxConcurrency are clamped.
func NewValidator(client *ripestat.Client, concurrency int) *Validator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}
	return &Validator{client: client, concurrency: concurrency}
}

// ValidateAll checks every prefix as announced by origin. Results keep
// the input order; a failed call becomes an error entry rather than
// aborting the sweep.
func (v *Validator) ValidateAll(ctx context.Context, origin uint32, prefixes []netip.Prefix) *report.Sweep {
	results := make([]*report.RPKIReport, len(prefixes))
	var wg sync.WaitGroup
	sem := make(chan struct{}, v.concurrency)

	for i, prefix := range prefixes {
		wg.Add(1)
		go func(idx int, p netip.Prefix) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			status, err := v.client.RPKIValidationStatus(ctx, origin, p)
			if err != nil {
				results[idx] = report.RPKIError(origin, p, err)
				return
			}
			results[idx] = report.NewRPKIReport(status)
		}(i, prefix)
	}

	wg.Wait()
	return &report.Sweep{Results: results}
}
