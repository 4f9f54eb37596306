package kinetics

import (
	"fmt"
	"sort"

	"github.com/san-kum/rdlab/internal/rd"
)

var registry = map[string]func() rd.Kinetics{}

// Register adds a kinetics constructor under the provided name. Later
// registrations of the same name win, so callers can override built-ins.
func Register(name string, fn func() rd.Kinetics) {
	if name == "" || fn == nil {
		return
	}
	registry[name] = fn
}

// New constructs the named kinetics model.
func New(name string) (rd.Kinetics, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("kinetics: unknown model %q", name)
	}
	return fn(), nil
}

// List returns the registered model names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("grayscott", func() rd.Kinetics { return NewGrayScott() })
	Register("fitzhugh", func() rd.Kinetics { return NewFitzHughNagumo() })
	Register("none", func() rd.Kinetics { return None() })
}
