package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pluginbridge/cgc/internal/cmddef"
)

// ActionFunc performs one step. Parameters come from the step's "with"
// block, decoded with step.Decode.
type ActionFunc func(ctx context.Context, sc *StepContext, step *cmddef.Step) error

var (
	actionsMu sync.RWMutex
	actions   = map[string]ActionFunc{
		"copy":          copyAction,
		"copy_contents": copyContentsAction,
		"remove":        removeAction,
		"shell":         shellAction,
		"log":           logAction,
	}
)

// Register adds an action to the table. It panics if name is empty or
// already registered, so it belongs in init functions.
func Register(name string, fn ActionFunc) {
	actionsMu.Lock()
	defer actionsMu.Unlock()

	if name == "" || fn == nil {
		panic("dispatch: Register requires a name and a function")
	}
	if _, dup := actions[name]; dup {
		panic(fmt.Sprintf("dispatch: action %q registered twice", name))
	}
	actions[name] = fn
}

// Actions returns the registered action names, sorted.
func Actions() []string {
	actionsMu.RLock()
	defer actionsMu.RUnlock()

	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupAction(name string) (ActionFunc, bool) {
	actionsMu.RLock()
	defer actionsMu.RUnlock()
	fn, ok := actions[name]
	return fn, ok
}
