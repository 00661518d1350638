package autocomplete

import "sync"

// ValueSuggester provides dynamic value suggestions for a positional argument.
type ValueSuggester interface {
	Suggest(partial string) []string
}

// ValueSuggestFunc adapts a simple function to ValueSuggester.
type ValueSuggestFunc func(partial string) []string

// Suggest implements ValueSuggester.
func (f ValueSuggestFunc) Suggest(partial string) []string { return f(partial) }

var (
	registryMut     sync.RWMutex
	suggestRegistry = map[string]ValueSuggester{}
)

// RegisterValueSuggester registers a named ValueSuggester, the name matches the argument name.
func RegisterValueSuggester(name string, s ValueSuggester) {
	registryMut.Lock()
	defer registryMut.Unlock()
	suggestRegistry[name] = s
}

// GetValueSuggester looks up a registered ValueSuggester by name.
func GetValueSuggester(name string) (ValueSuggester, bool) {
	registryMut.RLock()
	defer registryMut.RUnlock()
	v, ok := suggestRegistry[name]
	return v, ok
}

// UnregisterValueSuggester removes a named ValueSuggester from the registry.
func UnregisterValueSuggester(name string) {
	registryMut.Lock()
	defer registryMut.Unlock()
	delete(suggestRegistry, name)
}
