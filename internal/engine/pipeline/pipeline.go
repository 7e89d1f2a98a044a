package pipeline

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs one build: scan the roots, generate derivatives for every
// source image with bounded parallelism, and merge the results into each
// directory's manifest.
type Pipeline struct {
	scanner   ports.SourceScanner
	generator *Generator
	store     ports.ManifestStore
	tracer    ports.Tracer
	logger    ports.Logger
}

// New creates a Pipeline.
func New(
	scanner ports.SourceScanner,
	codec ports.ImageCodec,
	store ports.ManifestStore,
	tracer ports.Tracer,
	log ports.Logger,
) *Pipeline {
	return &Pipeline{
		scanner:   scanner,
		generator: NewGenerator(codec),
		store:     store,
		tracer:    tracer,
		logger:    log,
	}
}

// Run builds every source image below cfg.Roots. Per-image problems are
// logged and collected in the report; they never fail the run. Cancelling ctx
// stops scheduling further images, lets in-flight images finish, and returns
// the context error alongside the partial report.
func (p *Pipeline) Run(ctx context.Context, cfg *domain.Config) (*domain.BuildReport, error) {
	start := time.Now()
	report := &domain.BuildReport{Roots: len(cfg.Roots)}

	ctx, span := p.tracer.Start(ctx, "build")
	defer span.End()

	scan := p.scanner.Scan(cfg.Roots, cfg.Ignore)
	for _, f := range scan.Failures {
		p.logger.Error(f.Err)
		report.Fail(f.Root, f.Err)
	}
	sources := p.dropCollisions(scan.Sources, report)
	report.Images = len(sources)

	dirs, _ := scan.ByDir()
	batches := make(map[string]*dirBatch, len(dirs))
	for _, dir := range dirs {
		batches[dir] = newDirBatch(dir, p.store, p.logger)
	}

	plan := make([]string, len(sources))
	for i, src := range sources {
		plan[i] = src.Path
	}
	p.tracer.EmitPlan(ctx, plan)

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(limit)

	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		batch := batches[src.Dir]
		g.Go(func() error {
			units, err := p.processImage(ctx, src, cfg.Spec, batch)
			mu.Lock()
			defer mu.Unlock()
			report.Add(src.Path, units)
			if err != nil {
				report.Fail(src.Path, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, dir := range dirs {
		if batches[dir].written() {
			report.ManifestsWritten++
		}
	}
	report.Duration = time.Since(start)

	span.SetAttribute("images", report.Images)
	span.SetAttribute("encoded", report.Encoded)
	span.SetAttribute("fresh", report.Fresh)
	span.SetAttribute("failed", report.Failed)

	if err := ctx.Err(); err != nil {
		return report, zerr.Wrap(err, "build interrupted")
	}
	return report, nil
}

// processImage generates one image and commits its entry. The returned error
// covers failures that are not tied to a single width.
func (p *Pipeline) processImage(
	ctx context.Context,
	src domain.SourceImage,
	spec domain.DerivativeSpec,
	batch *dirBatch,
) ([]domain.UnitResult, error) {
	_, span := p.tracer.Start(ctx, src.Path, ports.WithDir(src.Dir))
	defer span.End()

	res := p.generator.Generate(src, spec, span)
	span.SetAttribute("widths", spec.Widths)

	if res.Abandoned() {
		p.logger.Error(res.Err)
		span.RecordError(res.Err)
		return res.Units, res.Err
	}

	var failed int
	for _, u := range res.Units {
		if u.Status == domain.UnitStatusFailed {
			failed++
			p.logger.Error(u.Err)
		}
	}
	if failed > 0 {
		span.RecordError(zerr.With(zerr.New("some widths failed"), "failed", failed))
	}

	if res.Entry.Empty() {
		return res.Units, nil
	}

	if err := batch.commit(src.Base, res.Entry); err != nil {
		p.logger.Error(err)
		span.RecordError(err)
		return res.Units, err
	}
	return res.Units, nil
}

// dropCollisions keeps the first source of each directory and base name.
// Sources differing only by extension would otherwise write the same derivatives.
func (p *Pipeline) dropCollisions(sources []domain.SourceImage, report *domain.BuildReport) []domain.SourceImage {
	type key struct{ dir, base string }
	seen := make(map[key]string, len(sources))
	kept := make([]domain.SourceImage, 0, len(sources))
	for _, src := range sources {
		k := key{src.Dir, src.Base}
		if first, ok := seen[k]; ok {
			err := zerr.With(zerr.With(zerr.Wrap(domain.ErrDuplicateBase, ""), "path", src.Path), "kept", first)
			p.logger.Error(err)
			report.Fail(src.Path, err)
			continue
		}
		seen[k] = src.Path
		kept = append(kept, src)
	}
	return kept
}
