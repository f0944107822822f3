package volume

import (
	"sync"

	"github.com/deploymenttheory/go-hfsplus/internal/interfaces"
)

var (
	engineMu      sync.RWMutex
	engineFactory interfaces.EngineFactory
)

// RegisterEngine installs the structural-engine factory used by Open,
// typically from an engine implementation's init function. Registering a
// nil factory panics. Re-registering replaces the previous factory, which
// tests rely on to swap in fakes.
func RegisterEngine(factory interfaces.EngineFactory) {
	if factory == nil {
		panic("volume: RegisterEngine called with nil factory")
	}
	engineMu.Lock()
	defer engineMu.Unlock()
	engineFactory = factory
}

func registeredEngine() (interfaces.EngineFactory, bool) {
	engineMu.RLock()
	defer engineMu.RUnlock()
	return engineFactory, engineFactory != nil
}
