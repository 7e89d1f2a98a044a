// Package app implements the application layer for folio.
package app

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/folio-site/folio/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"github.com/folio-site/folio/internal/engine/pipeline"
	"github.com/folio-site/folio/internal/engine/resolver"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultConfigPath is the configuration file read when no path is given.
const DefaultConfigPath = domain.ConfigFileName

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scanner      ports.SourceScanner
	codec        ports.ImageCodec
	store        ports.ManifestStore
	fetchers     ports.FetcherFactory
	pictures     ports.PictureRenderer
	tracer       ports.Tracer
	renderer     ports.Renderer
	watcher      ports.Watcher
	logger       ports.Logger
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	scanner ports.SourceScanner,
	codec ports.ImageCodec,
	store ports.ManifestStore,
	fetchers ports.FetcherFactory,
	pictures ports.PictureRenderer,
	tracer ports.Tracer,
	renderer ports.Renderer,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scanner:      scanner,
		codec:        codec,
		store:        store,
		fetchers:     fetchers,
		pictures:     pictures,
		tracer:       tracer,
		renderer:     renderer,
		watcher:      w,
		logger:       log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	ConfigPath  string
	Concurrency int
	Watch       bool
	JSON        bool
	// Output is "auto", "tui" or "linear". Ignored in JSON mode.
	Output string
}

// jsonSwitcher is implemented by loggers that can emit JSON records.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// Build generates the derivatives and manifests for every configured root.
// Per-image failures are part of the returned report, not the error. With
// Watch set it keeps rebuilding on source changes until ctx is cancelled.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*domain.BuildReport, error) {
	if opts.JSON {
		if sw, ok := a.logger.(jsonSwitcher); ok {
			sw.SetJSON(true)
		}
	}

	mode, err := detector.ResolveMode(detector.DetectEnvironment(), opts.Output)
	if err != nil {
		return nil, err
	}

	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Concurrency > 0 {
		cfg.Concurrency = opts.Concurrency
	}

	run := buildRun{cfg: cfg, quiet: opts.JSON, mode: mode}
	report, err := a.build(ctx, run)
	if err != nil || !opts.Watch {
		return report, err
	}
	return report, a.watch(ctx, run)
}

// buildRun holds the settings shared by every build of one invocation.
type buildRun struct {
	cfg   *domain.Config
	quiet bool
	mode  detector.OutputMode
}

// newRenderer returns the progress renderer for one build. The TUI program
// cannot be restarted, so a fresh one is created per build.
func (a *App) newRenderer(ctx context.Context, mode detector.OutputMode) ports.Renderer {
	if mode != detector.ModeTUI {
		return a.renderer
	}
	model := tui.NewModel()
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(os.Stderr)}, a.teaOptions...)
	return tui.NewRenderer(&model, opts...)
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// build runs the pipeline once. Progress goes to the renderer unless quiet.
func (a *App) build(ctx context.Context, run buildRun) (*domain.BuildReport, error) {
	cfg := run.cfg
	var renderer ports.Renderer
	if !run.quiet {
		renderer = a.newRenderer(ctx, run.mode)
	}
	if renderer == nil {
		report, err := pipeline.New(a.scanner, a.codec, a.store, a.tracer, a.logger).Run(ctx, cfg)
		a.logSummary(report)
		return report, err
	}

	// Spans of this run are forwarded to the renderer through the bridge.
	bridge := telemetry.NewBridge(renderer)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracerWithProvider(tp, "folio").WithRenderer(renderer)
	pipe := pipeline.New(a.scanner, a.codec, a.store, tracer, a.logger)

	var report *domain.BuildReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()
		var err error
		report, err = pipe.Run(gctx, cfg)
		return err
	})

	err := g.Wait()
	a.logSummary(report)
	return report, err
}

func (a *App) logSummary(report *domain.BuildReport) {
	if report == nil {
		return
	}
	a.logger.Info("build finished",
		"images", report.Images,
		"encoded", report.Encoded,
		"fresh", report.Fresh,
		"failed", report.Failed,
		"manifests", report.ManifestsWritten,
		"duration", report.Duration.Round(time.Millisecond).String(),
	)
}

// watch rebuilds after every debounced batch of source changes.
func (a *App) watch(ctx context.Context, run buildRun) error {
	if err := a.watcher.Start(ctx, run.cfg.Roots); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	rebuild := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Info("sources changed", "count", len(paths))
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info("watching for changes", "roots", len(run.cfg.Roots))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuild:
			if _, err := a.build(ctx, run); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// ResolveOptions configuration for the Resolve and Render methods.
// BaseURL takes precedence over Root.
type ResolveOptions struct {
	Root       string
	BaseURL    string
	ConfigPath string
}

func (a *App) newResolver(opts ResolveOptions) (*resolver.Resolver, error) {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	source := opts.BaseURL
	if source == "" {
		source = opts.Root
	}
	if source == "" {
		source = "."
	}
	fetcher, err := a.fetchers.ForSource(source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create manifest fetcher"), "source", source)
	}

	return resolver.New(fetcher, a.tracer, a.logger,
		resolver.WithSizes(cfg.Sizes),
		resolver.WithSpec(cfg.Spec),
	), nil
}

type resolvedLayer struct {
	Type   string `json:"type"`
	Srcset string `json:"srcset"`
	Sizes  string `json:"sizes"`
}

type resolvedRef struct {
	Ref      string          `json:"ref"`
	Src      string          `json:"src"`
	Fallback string          `json:"fallback"`
	Sources  []resolvedLayer `json:"sources"`
}

// Resolve prints the layered sources of every reference as a JSON array.
// References without derivatives resolve to their original image.
func (a *App) Resolve(ctx context.Context, w io.Writer, refs []string, opts ResolveOptions) error {
	if len(refs) == 0 {
		return domain.ErrNoReferences
	}

	res, err := a.newResolver(opts)
	if err != nil {
		return err
	}

	session := resolver.NewSession()
	out := make([]resolvedRef, 0, len(refs))
	for _, ref := range refs {
		pic := res.Resolve(ctx, session, ref, "")
		item := resolvedRef{
			Ref:      ref,
			Src:      pic.Src,
			Fallback: pic.Fallback,
			Sources:  make([]resolvedLayer, 0, len(pic.Layers)),
		}
		for _, l := range pic.Layers {
			item.Sources = append(item.Sources, resolvedLayer{Type: l.MimeType, Srcset: l.Srcset, Sizes: l.Sizes})
		}
		out = append(out, item)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return zerr.Wrap(err, "failed to write resolved references")
	}
	return nil
}

// Render writes one picture fragment per item of the project list at
// projectsPath. All items share one session, so each directory's manifest is
// fetched at most once.
func (a *App) Render(ctx context.Context, w io.Writer, projectsPath string, opts ResolveOptions) error {
	data, err := os.ReadFile(projectsPath) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrProjectListReadFailed.Error()), "path", projectsPath)
	}

	var items []domain.ProjectItem
	if err := json.Unmarshal(data, &items); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrProjectListParseFailed.Error()), "path", projectsPath)
	}

	res, err := a.newResolver(opts)
	if err != nil {
		return err
	}

	session := resolver.NewSession()
	for i, item := range items {
		if item.ImageURL == "" {
			a.logger.Warn("skipping project without image", "index", i, "title", item.Title)
			continue
		}
		pic := res.Resolve(ctx, session, item.ImageURL, item.Title)
		if err := a.pictures.Render(w, pic); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to render project"), "image", item.ImageURL)
		}
	}
	a.logger.Info("rendered pictures", "items", len(items), "manifests", session.Fetches())
	return nil
}
