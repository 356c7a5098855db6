package md2adf

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/alnah/go-md2adf/hast"
	"github.com/alnah/go-md2adf/mdast"
)

// anonymous is reported for steps without an identifiable name.
const anonymous = "anonymous"

// closureSuffix matches compiler-generated names of function literals.
var closureSuffix = regexp.MustCompile(`\.(func|glob\.\.func)\d+(\.\d+)*$`)

// Options configures a plugin. A nil Options behaves as empty.
type Options map[string]any

// Step is a plugin bound to its options: one transformation of a tree.
// Steps may mutate the tree in place and record results on the File.
type Step[T any] func(ctx context.Context, tree T, file *File) error

// Plugin binds options to a Step. A nil Step with a nil error means the
// plugin has nothing to do for these options.
type Plugin[T any] func(opts Options) (Step[T], error)

// Entry is a normalized plugin entry: a plugin and its options.
// Name is optional; when empty the plugin's function name is used.
type Entry[T any] struct {
	Name    string
	Plugin  Plugin[T]
	Options Options
}

// Plugin types for the two tree stages.
type (
	RemarkStep   = Step[*mdast.Tree]
	RemarkPlugin = Plugin[*mdast.Tree]
	RemarkEntry  = Entry[*mdast.Tree]

	RehypeStep   = Step[*hast.Node]
	RehypePlugin = Plugin[*hast.Node]
	RehypeEntry  = Entry[*hast.Node]
)

// Merge concatenates before, builtin and after in that order.
// Nil slices count as empty. Entries are neither deduplicated nor reordered.
func Merge[E any](before, builtin, after []E) []E {
	merged := make([]E, 0, len(before)+len(builtin)+len(after))
	merged = append(merged, before...)
	merged = append(merged, builtin...)
	return append(merged, after...)
}

// Normalize converts a user-supplied plugin entry into an Entry.
//
// Accepted shapes:
//   - a Plugin[T] or a plain func(Options) (Step[T], error)
//   - an Entry[T] or *Entry[T]
//   - []any{plugin} or []any{plugin, options}, where options is an
//     Options, a map[string]any or nil
//
// Missing options default to an empty Options. Any other shape fails with
// ErrInvalidPluginEntry naming the entry's type.
func Normalize[T any](entry any) (Entry[T], error) {
	var e Entry[T]
	switch v := entry.(type) {
	case Entry[T]:
		e = v
	case *Entry[T]:
		if v == nil {
			return Entry[T]{}, invalidEntry(entry)
		}
		e = *v
	case []any:
		if len(v) < 1 || len(v) > 2 {
			return Entry[T]{}, fmt.Errorf("%w: %d elements, want [plugin] or [plugin, options]",
				ErrInvalidPluginEntry, len(v))
		}
		p, ok := asPlugin[T](v[0])
		if !ok {
			return Entry[T]{}, invalidEntry(v[0])
		}
		e.Plugin = p
		if len(v) == 2 {
			opts, ok := asOptions(v[1])
			if !ok {
				return Entry[T]{}, fmt.Errorf("%w: options must be a map, got %T", ErrInvalidPluginEntry, v[1])
			}
			e.Options = opts
		}
	default:
		p, ok := asPlugin[T](entry)
		if !ok {
			return Entry[T]{}, invalidEntry(entry)
		}
		e.Plugin = p
	}

	if e.Plugin == nil {
		return Entry[T]{}, invalidEntry(entry)
	}
	if e.Options == nil {
		e.Options = Options{}
	}
	return e, nil
}

func invalidEntry(entry any) error {
	return fmt.Errorf("%w: unsupported type %T", ErrInvalidPluginEntry, entry)
}

func asPlugin[T any](v any) (Plugin[T], bool) {
	switch p := v.(type) {
	case Plugin[T]:
		return p, p != nil
	case func(Options) (Step[T], error):
		return p, p != nil
	}
	return nil, false
}

func asOptions(v any) (Options, bool) {
	switch o := v.(type) {
	case nil:
		return Options{}, true
	case Options:
		return o, true
	case map[string]any:
		return Options(o), true
	}
	return nil, false
}

// PluginName returns the name a step is reported under: the entry's Name,
// else the plugin function's name, else "anonymous".
func PluginName[T any](e Entry[T]) string {
	if e.Name != "" {
		return e.Name
	}
	return funcName(e.Plugin)
}

// funcName resolves a function's symbol name without its package path.
// Function literals have no useful name and report as anonymous.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return anonymous
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return anonymous
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	if closureSuffix.MatchString(name) {
		return anonymous
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return anonymous
	}
	return name
}

// step is one attached plugin.
type step[T any] struct {
	name string
	run  Step[T]
}

// Pipeline is an ordered list of attached steps. It is immutable: Use
// returns a new Pipeline and leaves the receiver unchanged, so a Pipeline
// can be shared between goroutines once built.
type Pipeline[T any] struct {
	steps []step[T]
}

// Use attaches one entry by calling its plugin with the entry's options.
// Attachment failures wrap ErrPluginAttach.
func (p Pipeline[T]) Use(e Entry[T]) (Pipeline[T], error) {
	if e.Plugin == nil {
		return p, invalidEntry(e.Plugin)
	}
	name := PluginName(e)
	run, err := e.Plugin(e.Options)
	if err != nil {
		return p, fmt.Errorf("%w: %s: %w", ErrPluginAttach, name, err)
	}
	if run == nil {
		return p, nil
	}
	// Full slice expression forces a copy on append.
	steps := append(p.steps[:len(p.steps):len(p.steps)], step[T]{name: name, run: run})
	return Pipeline[T]{steps: steps}, nil
}

// Len returns the number of attached steps.
func (p Pipeline[T]) Len() int {
	return len(p.steps)
}

// Run executes the steps in order. The first failing step aborts the run;
// its error is wrapped with ErrStepExecution and the step's name.
func (p Pipeline[T]) Run(ctx context.Context, tree T, file *File) error {
	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.run(ctx, tree, file); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStepExecution, s.name, err)
		}
	}
	return nil
}

// Apply attaches entries to p in order and returns the extended pipeline.
// The first failure aborts the fold.
func Apply[T any](p Pipeline[T], entries []Entry[T]) (Pipeline[T], error) {
	for _, e := range entries {
		var err error
		if p, err = p.Use(e); err != nil {
			return Pipeline[T]{}, err
		}
	}
	return p, nil
}
