package rate

import (
	"currencyconverter/internal/domain"
	"fmt"
	"strings"
)

const ProviderFrankfurter = "frankfurter"

// Factory resolves a configured provider name to its implementation.
type Factory struct {
	providers map[string]Provider
}

// Get is case-insensitive. An unknown name is a configuration error.
func (f *Factory) Get(name string) (Provider, error) {
	p, ok := f.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, name)
	}
	return p, nil
}

func NewFactory(providers map[string]Provider) *Factory {
	normalized := make(map[string]Provider, len(providers))
	for name, p := range providers {
		normalized[strings.ToLower(name)] = p
	}
	return &Factory{providers: normalized}
}
