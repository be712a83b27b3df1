package gateway

import (
	"context"
	"fmt"

	"saranalaya/internal/status"
)

// Factory implements ProviderFactory.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateProvider(ctx context.Context, name ProviderName, config interface{}) (Provider, error) {
	switch name {
	case ProviderDummy:
		cfg, ok := config.(*DummyConfig)
		if !ok {
			return nil, fmt.Errorf("invalid dummy config type, expected *gateway.DummyConfig")
		}
		return NewDummy(ctx, cfg)

	case ProviderMollie:
		return nil, fmt.Errorf("mollie provider not implemented yet")

	default:
		return nil, fmt.Errorf("unsupported gateway provider: %s", name)
	}
}

func (f *Factory) GetSupportedProviders() []ProviderName {
	return []ProviderName{ProviderDummy}
}

// Registry manages the configured provider instances. The first
// registered provider becomes the primary one.
type Registry struct {
	providers map[ProviderName]Provider
	factory   ProviderFactory
	primary   ProviderName
}

func NewRegistry(factory ProviderFactory) *Registry {
	return &Registry{
		providers: make(map[ProviderName]Provider),
		factory:   factory,
	}
}

func (r *Registry) Register(ctx context.Context, name ProviderName, config interface{}) error {
	provider, err := r.factory.CreateProvider(ctx, name, config)
	if err != nil {
		return fmt.Errorf("failed to create %s provider: %w", name, err)
	}

	r.providers[name] = provider

	if r.primary == "" {
		r.primary = name
	}

	return nil
}

func (r *Registry) Get(name ProviderName) (Provider, error) {
	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", status.ErrProviderNotFound, name)
	}
	return provider, nil
}

func (r *Registry) Primary() (Provider, error) {
	if r.primary == "" {
		return nil, status.ErrNoPrimaryProvider
	}
	return r.Get(r.primary)
}

func (r *Registry) Close(ctx context.Context) error {
	for name, provider := range r.providers {
		if err := provider.Close(ctx); err != nil {
			return fmt.Errorf("error closing %s provider: %w", name, err)
		}
	}
	return nil
}
