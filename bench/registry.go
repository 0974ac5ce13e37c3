// Package bench is K2's benchmarking harness: a registry of named
// workload constructors, the same shape as offset/test's
// newLogFuncs/NewCodecFunc registry that builds every framing×codec
// combination once at init time and hands each a name to run under.
// Here the axes are "which Schema shape" and "how many fields", and the
// thing built per combination is a Workload instead of a margaret.Log.
package bench

import (
	"fmt"

	"github.com/ccjeff/chogori-platform/mpack"
)

// Workload is one named, runnable unit of work: EncodeOne and DecodeOne
// perform a single encode/decode of the workload's representative
// value, so a benchmark can time either in isolation.
type Workload interface {
	Name() string
	EncodeOne() (mpack.Buffer, error)
	DecodeOne(mpack.Buffer) error
}

var registry = map[string]func() Workload{}

// Register adds a workload constructor under name, following
// offset/test's init()-time Register pattern: every workload variant
// registers itself once, and List/Build discover them by name rather than
// callers constructing them directly.
func Register(name string, newWorkload func() Workload) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("bench: workload %q already registered", name))
	}
	registry[name] = newWorkload
}

// List returns every registered workload name.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Build constructs the named workload, or reports ok=false if no such
// workload was registered.
func Build(name string) (w Workload, ok bool) {
	newWorkload, ok := registry[name]
	if !ok {
		return nil, false
	}
	return newWorkload(), true
}
