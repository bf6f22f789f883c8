// Package runcontext selects run-context providers and merges their tags
// into a run's tags, the way a tracking host does at run start.
package runcontext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvProvider names the providers to enable, comma separated.
const EnvProvider = "MLFLOW_RUN_CONTEXT_PROVIDER"

const providerKey = "run_context_provider"

var (
	// ErrUnknownProvider is returned when a selected provider is not registered.
	ErrUnknownProvider = errors.New("unknown run context provider")
	// ErrDuplicateProvider is returned when a name is registered twice.
	ErrDuplicateProvider = errors.New("run context provider already registered")
)

// Provider contributes tags to a run.
type Provider interface {
	Name() string
	InContext() bool
	Tags(ctx context.Context) map[string]string
}

// Registry holds the known providers.
type Registry struct {
	v         *viper.Viper
	providers map[string]Provider
	order     []string
}

// NewRegistry returns an empty registry reading its selection from v. A nil v
// reads the EnvProvider environment variable only.
func NewRegistry(v *viper.Viper) *Registry {
	if v == nil {
		v = viper.New()
	}
	_ = v.BindEnv(providerKey, EnvProvider)
	return &Registry{
		v:         v,
		providers: make(map[string]Provider),
	}
}

// Register adds p under p.Name().
func (r *Registry) Register(p Provider) error {
	name := p.Name()
	if _, ok := r.providers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, name)
	}
	r.providers[name] = p
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Select overrides the configured selection with names, comma separated.
func (r *Registry) Select(names string) {
	r.v.Set(providerKey, names)
}

// Names lists registered providers in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Selected returns the providers named by the configuration, in the order
// they are named. Nothing selected means no providers.
func (r *Registry) Selected() ([]Provider, error) {
	var selected []Provider
	seen := make(map[string]bool)
	for _, name := range strings.Split(r.v.GetString(providerKey), ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		p, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// Resolve returns the run tags: tags of every selected provider that is in
// context, overridden by the caller's own tags.
func (r *Registry) Resolve(ctx context.Context, tags map[string]string) (map[string]string, error) {
	providers, err := r.Selected()
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]string)
	for _, p := range providers {
		if !p.InContext() {
			slog.Debug("run context provider not in context", "provider", p.Name())
			continue
		}
		for k, v := range p.Tags(ctx) {
			resolved[k] = v
		}
	}
	for k, v := range tags {
		resolved[k] = v
	}
	return resolved, nil
}
