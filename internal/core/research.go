package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/htmlsafe"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/search"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const resultsPerProvider = 5

// ResearchService answers web research queries: registered search providers
// supply the sources and the model writes the report. Without any provider
// results the model's own search grounding is used.
type ResearchService struct {
	registry   *search.Registry
	researcher ai.Researcher
	log        *logger.Logger
	tracer     trace.Tracer
}

func NewResearchService(registry *search.Registry, researcher ai.Researcher, log *logger.Logger) *ResearchService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ResearchService{
		registry:   registry,
		researcher: researcher,
		log:        log.With("component", "ResearchService"),
		tracer:     otel.Tracer(tracerName),
	}
}

func (r *ResearchService) Research(ctx context.Context, query string) (ai.ResearchReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ai.ResearchReport{}, ErrEmptyQuery
	}
	ctx, span := r.tracer.Start(ctx, "ResearchService.Research")
	defer span.End()

	articles := r.registry.Gather(ctx, query, resultsPerProvider)
	span.SetAttributes(attribute.Int("research.articles", len(articles)))

	var (
		report ai.ResearchReport
		err    error
	)
	if len(articles) > 0 {
		r.log.Info("[ResearchService.Research] writing report from provider results", "query", query, "articles", len(articles))
		report, err = r.researcher.Research(ctx, query, articles)
	} else {
		r.log.Info("[ResearchService.Research] no provider results, using grounded search", "query", query)
		report, err = r.researcher.GroundedResearch(ctx, query)
	}
	if err != nil {
		span.RecordError(err)
		return ai.ResearchReport{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	report.SummaryHTML = htmlsafe.Sanitize(report.SummaryHTML)
	return report, nil
}
