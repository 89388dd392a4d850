package backend

import (
	"fmt"

	"opslink/internal/config"
	"opslink/internal/port"
)

// ProviderFactory creates a Backend from a provider config.
type ProviderFactory func(cfg *config.BackendConfig) (port.Backend, error)

// registry of backend provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a backend provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a Backend from a provider config using the registered factory.
func New(cfg *config.BackendConfig) (port.Backend, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown backend provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
