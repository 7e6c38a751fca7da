package loaders

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/metaloader/pkg/errors"
)

// Factory builds a loader with its default configuration.
type Factory func() Loader

var (
	registryMu sync.RWMutex
	factories  = map[string]Factory{}
	order      []string
)

func init() {
	Register("chase", func() Loader { return NewChase(DefaultChaseConfig()) })
	Register("scatter", func() Loader { return NewScatter(DefaultScatterConfig()) })
	Register("pursue", func() Loader { return NewPursue(DefaultPursueConfig()) })
	Register("swap", func() Loader { return NewSwap(DefaultSwapConfig()) })
	Register("mix", func() Loader { return NewMix(DefaultMixConfig()) })
	Register("shuttle", func() Loader { return NewShuttle(DefaultShuttleConfig()) })
	Register("round", func() Loader { return NewRound(DefaultRoundConfig()) })
	Register("linear", func() Loader { return NewLinear(DefaultLinearConfig()) })
	Register("horizontal", func() Loader { return NewHorizontal(DefaultHorizontalConfig()) })
	Register("skip", func() Loader { return NewSkip(DefaultSkipConfig()) })
}

// Register adds a named variant. Registering an existing name replaces its
// factory and keeps its position in [Names].
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := factories[name]; !ok {
		order = append(order, name)
	}
	factories[name] = f
}

// Names returns the registered variant names in registration order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Clone(order)
}

// New builds the named variant with its default configuration.
func New(name string) (Loader, error) {
	registryMu.RLock()
	f, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, &errors.LoaderError{
			Op:     "loaders.New",
			Kind:   errors.KindConfig,
			Err:    fmt.Errorf("%w: %q", errors.ErrUnknownLoader, name),
			Loader: name,
		}
	}
	return f(), nil
}
