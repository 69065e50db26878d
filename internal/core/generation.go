package core

import (
	"context"
	"fmt"
	"time"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/htmlsafe"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/amityadav/studybuddy/internal/core"

// Modules selects which artifacts a generation run produces
type Modules struct {
	Summary    bool `json:"summary"`
	Flashcards bool `json:"flashcards"`
	Quiz       bool `json:"quiz"`
	Map        bool `json:"map"`
	Terms      bool `json:"terms"`
	Locations  bool `json:"locations"`
}

// AllModules enables every artifact
func AllModules() Modules {
	return Modules{Summary: true, Flashcards: true, Quiz: true, Map: true, Terms: true, Locations: true}
}

type GenerateRequest struct {
	Title   string
	Content string
	Context string
	Images  []domain.Image
	Subject string
	Modules Modules
}

// LinkExpander appends the text of pages linked from content
type LinkExpander interface {
	Expand(ctx context.Context, content string) string
}

// Orchestrator fans generation out to one collaborator call per enabled
// module and persists the result only when every call succeeded
type Orchestrator struct {
	store    *store.Store
	gen      ai.Generator
	expander LinkExpander
	log      *logger.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

func NewOrchestrator(s *store.Store, gen ai.Generator, expander LinkExpander, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Orchestrator{
		store:    s,
		gen:      gen,
		expander: expander,
		log:      log.With("component", "Orchestrator"),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
}

// generated holds one run's outputs. Disabled modules keep their zero value.
type generated struct {
	summary    string
	overview   string
	flashcards []domain.Flashcard
	quiz       []domain.QuizQuestion
	conceptMap *domain.ConceptMapNode
	locations  []domain.StudyLocation
	keyTerms   []string
}

// Generate runs every enabled module concurrently and returns the new
// material id. Any module failure aborts the run before anything is stored.
func (o *Orchestrator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	ctx, span := o.tracer.Start(ctx, "Orchestrator.Generate")
	defer span.End()

	o.log.Info("[Orchestrator.Generate] Starting", "title", req.Title, "content_len", len(req.Content), "images", len(req.Images), "modules", req.Modules)

	in := ai.Input{Content: req.Content, Context: req.Context, Images: req.Images}
	if o.expander != nil {
		in.Content = o.expander.Expand(ctx, in.Content)
	}

	out, err := o.run(ctx, req.Modules, in)
	if err != nil {
		return "", o.fail(span, "generation", err)
	}
	if err := ctx.Err(); err != nil {
		return "", o.fail(span, "generation", err)
	}

	m := domain.StudyMaterial{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   out.summary,
		Context:   req.Context,
		Subject:   req.Subject,
		Images:    req.Images,
		CreatedAt: o.now().UnixMilli(),
		Type:      domain.MaterialText,
	}
	span.SetAttributes(attribute.String("material.id", m.ID))

	if err := o.persist(ctx, m, req.Modules, out); err != nil {
		return "", o.fail(span, "persistence", err)
	}

	o.log.Info("[Orchestrator.Generate] Complete", "material_id", m.ID)
	return m.ID, nil
}

func (o *Orchestrator) run(ctx context.Context, mods Modules, in ai.Input) (generated, error) {
	var out generated
	g, gctx := errgroup.WithContext(ctx)

	// each goroutine writes only its own field of out
	o.spawn(g, gctx, "summary", mods.Summary, func(ctx context.Context) (err error) {
		out.summary, err = o.gen.Summary(ctx, in)
		out.summary = htmlsafe.Sanitize(out.summary)
		return err
	})
	o.spawn(g, gctx, "overview", mods.Summary, func(ctx context.Context) (err error) {
		out.overview, err = o.gen.Overview(ctx, in)
		return err
	})
	o.spawn(g, gctx, "flashcards", mods.Flashcards, func(ctx context.Context) (err error) {
		out.flashcards, err = o.gen.Flashcards(ctx, in)
		return err
	})
	o.spawn(g, gctx, "quiz", mods.Quiz, func(ctx context.Context) (err error) {
		out.quiz, err = o.gen.Quiz(ctx, in)
		return err
	})
	o.spawn(g, gctx, "concept_map", mods.Map, func(ctx context.Context) (err error) {
		out.conceptMap, err = o.gen.ConceptMap(ctx, in)
		return err
	})
	o.spawn(g, gctx, "key_terms", mods.Terms, func(ctx context.Context) (err error) {
		out.keyTerms, err = o.gen.KeyTerms(ctx, in)
		return err
	})
	o.spawn(g, gctx, "locations", mods.Locations, func(ctx context.Context) (err error) {
		out.locations, err = o.gen.Locations(ctx, in)
		return err
	})

	if err := g.Wait(); err != nil {
		return generated{}, err
	}
	return out, nil
}

func (o *Orchestrator) spawn(g *errgroup.Group, ctx context.Context, module string, enabled bool, fn func(context.Context) error) {
	if !enabled {
		return
	}
	g.Go(func() error {
		ctx, span := o.tracer.Start(ctx, "generate."+module)
		defer span.End()

		start := time.Now()
		if err := fn(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.log.Warn("[Orchestrator.run] module failed", "module", module, "error", err)
			return fmt.Errorf("%s: %w", module, err)
		}
		o.log.Debug("[Orchestrator.run] module done", "module", module, "duration", time.Since(start))
		return nil
	})
}

// persist writes the material first and its side tables after it. If any
// write fails, everything written for this material is removed again.
func (o *Orchestrator) persist(ctx context.Context, m domain.StudyMaterial, mods Modules, out generated) error {
	ctx, span := o.tracer.Start(context.WithoutCancel(ctx), "Orchestrator.persist")
	defer span.End()

	if err := o.store.AppendMaterial(ctx, m); err != nil {
		return err
	}

	writes := []struct {
		enabled bool
		write   func() error
	}{
		{mods.Summary, func() error { return o.store.SaveOverview(ctx, m.ID, out.overview) }},
		{mods.Flashcards, func() error { return o.store.SaveFlashcards(ctx, m.ID, nonNil(out.flashcards)) }},
		{mods.Quiz, func() error { return o.store.SaveQuiz(ctx, m.ID, nonNil(out.quiz)) }},
		{mods.Map && out.conceptMap != nil, func() error { return o.store.SaveConceptMap(ctx, m.ID, out.conceptMap) }},
		{mods.Terms, func() error { return o.store.SaveKeyTerms(ctx, m.ID, nonNil(out.keyTerms)) }},
		{mods.Locations, func() error { return o.store.SaveLocations(ctx, m.ID, nonNil(out.locations)) }},
	}
	for _, w := range writes {
		if !w.enabled {
			continue
		}
		if err := w.write(); err != nil {
			o.rollback(ctx, m.ID)
			return err
		}
	}
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, materialID string) {
	if err := o.store.DeleteSideTables(ctx, materialID); err != nil {
		o.log.Error("[Orchestrator.rollback] failed to remove side tables", "material_id", materialID, "error", err)
	}
	if err := o.store.DeleteMaterial(ctx, materialID); err != nil {
		o.log.Error("[Orchestrator.rollback] failed to remove material", "material_id", materialID, "error", err)
	}
}

func (o *Orchestrator) fail(span trace.Span, phase string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, phase+" failed")
	o.log.Error("[Orchestrator.Generate] FAILED", "phase", phase, "error", err)
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
