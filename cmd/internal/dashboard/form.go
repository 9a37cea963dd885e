package dashboard

import (
	"maps"
	"sync"
)

// Form holds the values of the company creation form. They survive a failed
// submission so the user can correct them, and are cleared on success.
type Form struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewForm() *Form {
	return &Form{values: map[string]string{}}
}

func (f *Form) Set(values map[string]string) {
	f.mu.Lock()
	f.values = maps.Clone(values)
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.mu.Unlock()
}

func (f *Form) Reset() {
	f.Set(nil)
}

func (f *Form) Value(field string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[field]
}

func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.values)
}

func (f *Form) Empty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.values) == 0
}
