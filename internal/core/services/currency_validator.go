package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	"github.com/SscSPs/currency_conversion_service/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

// currencyValidator checks codes against the cached upstream symbol set and
// refills the set from the provider when it is absent or expired.
type currencyValidator struct {
	BaseService
	cache  portsrepo.CacheStore
	rates  providers.RatesProvider
	refill singleflight.Group
}

// NewCurrencyValidator creates the currency validator.
func NewCurrencyValidator(cache portsrepo.CacheStore, rates providers.RatesProvider) portssvc.CurrencyValidatorSvc {
	return &currencyValidator{cache: cache, rates: rates}
}

var _ portssvc.CurrencyValidatorSvc = (*currencyValidator)(nil)

func (v *currencyValidator) IsValid(ctx context.Context, code string) (bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	members, err := v.cache.SetMembers(ctx, domain.ValidCurrenciesKey)
	if err != nil {
		return false, fmt.Errorf("failed to read valid currencies: %w", err)
	}
	if len(members) == 0 {
		members, err = v.loadSymbols(ctx)
		if err != nil {
			return false, err
		}
	}
	return slices.Contains(members, code), nil
}

// loadSymbols fetches the symbol set once for all concurrent callers and
// stores it with a TTL on the whole set. Nothing is written if the fetch fails.
// The shared fetch ignores the starting caller's cancellation; each caller
// stops waiting when its own ctx is done.
func (v *currencyValidator) loadSymbols(ctx context.Context) ([]string, error) {
	refillCtx := context.WithoutCancel(ctx)
	ch := v.refill.DoChan(domain.ValidCurrenciesKey, func() (any, error) {
		symbols, err := v.rates.FetchAllSymbols(refillCtx)
		if err != nil {
			return nil, err
		}

		if err := v.cache.AddToSet(refillCtx, domain.ValidCurrenciesKey, symbols...); err != nil {
			v.LogWarn(refillCtx, err, "Failed to cache valid currencies")
			return symbols, nil
		}
		if err := v.cache.SetTTL(refillCtx, domain.ValidCurrenciesKey, domain.ValidCurrenciesTTL); err != nil {
			v.LogWarn(refillCtx, err, "Failed to set valid currencies TTL")
		}
		v.LogInfo(refillCtx, "Refreshed valid currencies", slog.Int("count", len(symbols)))
		return symbols, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			v.LogDebug(ctx, "Shared valid currencies refill with concurrent request")
		}
		return res.Val.([]string), nil
	}
}
