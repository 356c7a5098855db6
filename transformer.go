package md2adf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-md2adf/adf"
	"github.com/alnah/go-md2adf/hast"
	"github.com/alnah/go-md2adf/internal/config"
	"github.com/alnah/go-md2adf/internal/pipeline"
	"github.com/alnah/go-md2adf/mdast"
)

// state is the Transformer lifecycle.
type state int

const (
	stateUninitialized state = iota
	stateInitializing
	stateReady
)

// Transformer converts Markdown to ADF documents.
// Create with NewTransformer; it initializes lazily on first use and can
// be reused, including from several goroutines.
type Transformer struct {
	cfg          transformerConfig
	backend      Backend
	preprocessor pipeline.MarkdownPreprocessor
	registry     *Registry
	logger       *slog.Logger

	mu      sync.Mutex
	state   state
	remark  Pipeline[*mdast.Tree]
	rehype  Pipeline[*hast.Node]
	plugins PluginConfiguration
}

// Result is a transformed document and the per-document File state.
type Result struct {
	Document *adf.Document
	File     *File
}

// PluginConfiguration lists the resolved step names in execution order.
type PluginConfiguration struct {
	Remark []string `json:"remark"`
	Rehype []string `json:"rehype"`
}

// NewTransformer creates a Transformer. Configuration is not loaded until
// Initialize or the first Transform.
func NewTransformer(opts ...Option) *Transformer {
	t := &Transformer{
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.backend == nil {
		t.backend = NewGoldmarkBackend()
	}
	if t.registry == nil {
		t.registry = DefaultRegistry()
	}
	if t.logger == nil {
		t.logger = discardLogger()
	}

	return t
}

// Initialize loads configuration and builds both step pipelines.
// It is idempotent; after a failure the Transformer stays uninitialized
// and the next call retries.
func (t *Transformer) Initialize(ctx context.Context) error {
	_, _, err := t.pipelines(ctx)
	return err
}

// pipelines initializes if needed and returns the built pipelines.
func (t *Transformer) pipelines(ctx context.Context) (Pipeline[*mdast.Tree], Pipeline[*hast.Node], error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == stateReady {
		return t.remark, t.rehype, nil
	}

	t.state = stateInitializing
	if err := t.safeInitialize(ctx); err != nil {
		t.state = stateUninitialized
		return Pipeline[*mdast.Tree]{}, Pipeline[*hast.Node]{}, err
	}
	t.state = stateReady
	return t.remark, t.rehype, nil
}

// safeInitialize reports a panicking plugin constructor as ErrStepExecution.
func (t *Transformer) safeInitialize(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic during initialization: %v", ErrStepExecution, r)
		}
	}()
	return t.initialize(ctx)
}

// initialize runs with t.mu held.
func (t *Transformer) initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fileCfg, err := t.loadConfig()
	if err != nil {
		return err
	}
	if fileCfg == nil {
		fileCfg = &Config{}
	}

	remarkBefore, err := resolveField(t.cfg.remarkBefore, fileCfg.RemarkPluginsBefore, t.registry.Remark)
	if err != nil {
		return fmt.Errorf("%s: %w", config.KeyRemarkPluginsBefore, err)
	}
	remarkAfter, err := resolveField(t.cfg.remarkAfter, fileCfg.RemarkPluginsAfter, t.registry.Remark)
	if err != nil {
		return fmt.Errorf("%s: %w", config.KeyRemarkPluginsAfter, err)
	}
	rehypeBefore, err := resolveField(t.cfg.rehypeBefore, fileCfg.RehypePluginsBefore, t.registry.Rehype)
	if err != nil {
		return fmt.Errorf("%s: %w", config.KeyRehypePluginsBefore, err)
	}
	rehypeAfter, err := resolveField(t.cfg.rehypeAfter, fileCfg.RehypePluginsAfter, t.registry.Rehype)
	if err != nil {
		return fmt.Errorf("%s: %w", config.KeyRehypePluginsAfter, err)
	}

	remarkEntries := Merge(remarkBefore, BuiltinRemarkPlugins(), remarkAfter)
	rehypeEntries := Merge(rehypeBefore, builtinRehypePlugins(t.cfg.codeLanguage), rehypeAfter)

	remark, err := Apply(Pipeline[*mdast.Tree]{}, remarkEntries)
	if err != nil {
		return err
	}
	rehype, err := Apply(Pipeline[*hast.Node]{}, rehypeEntries)
	if err != nil {
		return err
	}

	t.remark = remark
	t.rehype = rehype
	t.plugins = PluginConfiguration{
		Remark: entryNames(remarkEntries),
		Rehype: entryNames(rehypeEntries),
	}

	t.logger.DebugContext(ctx, "transformer initialized",
		slog.Any("remark", t.plugins.Remark),
		slog.Any("rehype", t.plugins.Rehype))
	return nil
}

// loadConfig returns the supplied or loaded configuration, or nil.
func (t *Transformer) loadConfig() (*Config, error) {
	if t.cfg.config != nil {
		t.logger.Debug("using supplied configuration")
		return t.cfg.config, nil
	}

	dir := t.cfg.configDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
		}
		dir = wd
	}

	cfg, err := config.LoadFrom(dir, t.cfg.configPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		t.logger.Debug("no configuration file", slog.String("dir", dir))
		return nil, nil
	}
	t.logger.Debug("configuration loaded", slog.String("path", cfg.Path))
	return cfg, nil
}

// resolveField picks the option value when set, else the file value.
func resolveField[T any](explicit []any, specs []PluginSpec, lookup func(string) (Plugin[T], bool)) ([]Entry[T], error) {
	if explicit == nil {
		return resolveSpecs(specs, lookup)
	}
	entries := make([]Entry[T], 0, len(explicit))
	for i, raw := range explicit {
		e, err := Normalize[T](raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entryNames[T any](entries []Entry[T]) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = PluginName(e)
	}
	return names
}

// PluginConfiguration returns the resolved step names in execution order.
// Both lists are empty until the Transformer is initialized.
func (t *Transformer) PluginConfiguration() PluginConfiguration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != stateReady {
		return PluginConfiguration{Remark: []string{}, Rehype: []string{}}
	}
	return PluginConfiguration{
		Remark: append([]string{}, t.plugins.Remark...),
		Rehype: append([]string{}, t.plugins.Rehype...),
	}
}

// Transform converts Markdown to an ADF document.
func (t *Transformer) Transform(ctx context.Context, markdown string) (*adf.Document, error) {
	result, err := t.TransformDocument(ctx, markdown)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// TransformDocument converts Markdown and also returns the File with the
// document's front matter and the data recorded by steps.
func (t *Transformer) TransformDocument(ctx context.Context, markdown string) (*Result, error) {
	return t.transform(ctx, NewFile(""), markdown)
}

// TransformFile reads and converts the Markdown file at path.
func (t *Transformer) TransformFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading markdown: %w", err)
	}
	return t.transform(ctx, NewFile(path), string(data))
}

// transform runs the full pipeline. Panics raised by steps are recovered
// and reported as ErrStepExecution.
func (t *Transformer) transform(ctx context.Context, file *File, markdown string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrStepExecution, r)
		}
	}()

	remark, rehype, err := t.pipelines(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	pre, err := t.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("preprocessing markdown: %w", err)
	}
	for k, v := range pre.Meta {
		file.Meta[k] = v
	}

	tree, err := t.backend.Parse(ctx, []byte(pre.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	if err := remark.Run(ctx, tree, file); err != nil {
		return nil, err
	}

	root, err := t.backend.ToHTMLTree(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("building HTML tree: %w", err)
	}
	if err := rehype.Run(ctx, root, file); err != nil {
		return nil, err
	}

	doc := file.Compiler().Compile(root)

	t.logger.DebugContext(ctx, "document transformed",
		slog.String("path", file.Path),
		slog.Int("blocks", len(doc.Content)),
		slog.Duration("duration", time.Since(start)))

	return &Result{Document: doc, File: file}, nil
}
