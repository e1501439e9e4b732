package codec

import (
	"fmt"
	"sync"
)

// registry is the explicit method-id -> Codec dispatch table. Codecs register themselves from an init() in
// their own file so that importing codec/deflate (or any other codec
// sub-package) for side effects is enough to make the method available.
var (
	mu       sync.RWMutex
	registry = make(map[Method]Codec)
)

// Register adds (or replaces) the Codec responsible for method. It is
// intended to be called from a package init() function.
func Register(method Method, c Codec) {
	mu.Lock()
	defer mu.Unlock()
	registry[method] = c
}

// Lookup returns the Codec registered for method, or ErrUnsupportedMethod
// if none was registered.
func Lookup(method Method) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := registry[method]
	if !ok {
		return nil, fmt.Errorf("look up codec for method %s error: %w", method, ErrUnsupportedMethod)
	}

	return c, nil
}

// Registered reports whether a Codec is currently registered for method.
func Registered(method Method) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[method]
	return ok
}
