package providers

import "context"

// RatesProvider is the upstream source of exchange rates. Failures are
// reported as apperrors.KindUpstreamUnavailable.
type RatesProvider interface {
	// FetchAllSymbols returns every currency code the provider quotes, uppercased.
	FetchAllSymbols(ctx context.Context) ([]string, error)

	// FetchRate returns how many units of to one unit of from buys.
	FetchRate(ctx context.Context, from, to string) (float64, error)
}
