package trainer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Edlina007/ml-agents/brain"
)

// Factory constructs a concrete Trainer for one brain from the brain's
// layout and the hyperparameters loaded for it
type Factory func(params brain.Parameters,
	hyperparameters map[string]interface{}, training bool, runID string,
	logger *slog.Logger) (Trainer, error)

// Registered factories by trainer type name. No factories are
// registered by this package itself; each concrete trainer package
// registers its own type in an init function to avoid circular
// imports.
var registeredTypes map[string]Factory

func init() {
	registeredTypes = make(map[string]Factory)
}

// Register registers a trainer type name ("ppo", "bc", ...) with the
// factory that builds trainers of that type. Registering the same
// name twice panics, since it means two packages claim the same
// trainer type.
func Register(name string, f Factory) {
	if _, ok := registeredTypes[name]; ok {
		panic(fmt.Sprintf("register: trainer type %q already registered",
			name))
	}
	registeredTypes[name] = f
}

// New builds a trainer of the named type for one brain. It fails when
// no factory was registered under name.
func New(name string, params brain.Parameters,
	hyperparameters map[string]interface{}, training bool, runID string,
	logger *slog.Logger) (Trainer, error) {
	f, ok := registeredTypes[name]
	if !ok {
		return nil, fmt.Errorf("new: no trainer registered for type %q "+
			"(registered: %v)", name, Types())
	}
	return f(params, hyperparameters, training, runID, logger)
}

// Types returns the names of every registered trainer type, sorted
func Types() []string {
	names := make([]string, 0, len(registeredTypes))
	for name := range registeredTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
