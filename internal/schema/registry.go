package schema

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/unna97/topst/internal/config"
	"github.com/unna97/topst/internal/validator"
)

// Registry hands out one compiled validator per flavor. A validator is built
// on first use, which is when the flavor's schema documents are fetched, and
// cached for the lifetime of the registry. Concurrent first use of the same
// flavor is collapsed into a single build.
type Registry struct {
	cfg    *config.Config
	client *http.Client
	logger *slog.Logger

	mu        sync.RWMutex
	cache     map[Flavor]validator.Validator
	loadGroup singleflight.Group
}

// NewRegistry creates a registry using the given configuration for flavor
// location overrides and HTTP behaviour.
func NewRegistry(cfg *config.Config, logger *slog.Logger) *Registry {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		cfg:    cfg,
		client: cfg.HTTPClient(),
		logger: logger,
		cache:  make(map[Flavor]validator.Validator),
	}
}

// Definition returns the effective definition for f with any configuration
// overrides applied. Unknown flavors fail with *UnsupportedFlavorError.
func (r *Registry) Definition(f Flavor) (Definition, error) {
	d, err := Lookup(f)
	if err != nil {
		return Definition{}, err
	}
	if override, ok := r.cfg.FlavorOverride(string(f)); ok {
		if override.BaseURL != "" {
			d.BaseURL = override.BaseURL
		}
		if override.RootDocument != "" {
			d.RootDocument = override.RootDocument
		}
	}
	return d, nil
}

// Validator returns the compiled validator for f, building it if necessary.
func (r *Registry) Validator(f Flavor) (validator.Validator, error) {
	r.mu.RLock()
	v, ok := r.cache[f]
	r.mu.RUnlock()
	if ok {
		return v, nil
	}

	result, err, _ := r.loadGroup.Do(string(f), func() (any, error) {
		// Recheck under the group: a concurrent caller may have finished.
		r.mu.RLock()
		v, ok := r.cache[f]
		r.mu.RUnlock()
		if ok {
			return v, nil
		}

		built, err := r.build(f)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[f] = built
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(validator.Validator), nil
}

// Resolver returns an HTTP resolver anchored at the flavor's effective base
// URL.
func (r *Registry) Resolver(f Flavor) (*HTTPResolver, error) {
	d, err := r.Definition(f)
	if err != nil {
		return nil, err
	}
	return NewHTTPResolver(d.BaseURL, r.client, r.logger)
}

func (r *Registry) build(f Flavor) (validator.Validator, error) {
	d, err := r.Definition(f)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("building validator", "flavor", f, "root", d.RootURL())

	switch d.Format {
	case FormatJSON:
		return validator.NewJSONSchema(d.RootURL(), r.client)
	default:
		resolver, err := NewHTTPResolver(d.BaseURL, r.client, r.logger)
		if err != nil {
			return nil, err
		}
		return validator.NewXSD(d.RootURL(), resolver)
	}
}
