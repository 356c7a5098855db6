package md2adf

import (
	"fmt"
	"slices"
	"sync"

	"github.com/alnah/go-md2adf/internal/config"
)

// Registry maps plugin names to plugins so configuration files can refer
// to steps by name. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	remark map[string]RemarkPlugin
	rehype map[string]RehypePlugin
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		remark: map[string]RemarkPlugin{},
		rehype: map[string]RehypePlugin{},
	}
}

// DefaultRegistry creates a Registry holding the built-in and bundled plugins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.remark[ConfluenceMacrosName] = ConfluenceMacros
	r.remark[HeadingTrackerName] = HeadingTracker
	r.remark[StripTitleName] = StripTitle
	r.rehype[ConfluenceADFName] = ConfluenceADF
	r.rehype[RewriteLinksName] = RewriteLinks
	return r
}

// RegisterRemark registers a Markdown-tree plugin, replacing any plugin
// already registered under name.
func (r *Registry) RegisterRemark(name string, p RemarkPlugin) error {
	return register(&r.mu, r.remark, name, p)
}

// RegisterRehype registers an element-tree plugin, replacing any plugin
// already registered under name.
func (r *Registry) RegisterRehype(name string, p RehypePlugin) error {
	return register(&r.mu, r.rehype, name, p)
}

func register[T any](mu *sync.RWMutex, m map[string]Plugin[T], name string, p Plugin[T]) error {
	if name == "" {
		return fmt.Errorf("%w: empty plugin name", ErrInvalidPluginEntry)
	}
	if p == nil {
		return fmt.Errorf("%w: nil plugin %q", ErrInvalidPluginEntry, name)
	}
	mu.Lock()
	defer mu.Unlock()
	m[name] = p
	return nil
}

// Remark looks up a Markdown-tree plugin by name.
func (r *Registry) Remark(name string) (RemarkPlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.remark[name]
	return p, ok
}

// Rehype looks up an element-tree plugin by name.
func (r *Registry) Rehype(name string) (RehypePlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.rehype[name]
	return p, ok
}

// RemarkNames returns the registered Markdown-tree plugin names, sorted.
func (r *Registry) RemarkNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.remark)
}

// RehypeNames returns the registered element-tree plugin names, sorted.
func (r *Registry) RehypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.rehype)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// resolveSpecs turns configuration file specs into entries by looking each
// name up in the registry.
func resolveSpecs[T any](specs []config.PluginSpec, lookup func(string) (Plugin[T], bool)) ([]Entry[T], error) {
	entries := make([]Entry[T], 0, len(specs))
	for _, spec := range specs {
		p, ok := lookup(spec.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, spec.Name)
		}
		entries = append(entries, Entry[T]{Name: spec.Name, Plugin: p, Options: Options(spec.Options)})
	}
	return entries, nil
}
