package core

import (
	"context"
	"html"
	"strings"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type AudioLessonRequest struct {
	Title   string
	Content string
	Context string
	Images  []domain.Image
	Subject string
}

// GenerateAudioLesson asks for the whole lesson script in one call and
// stores it as an audio-lesson material. Nothing is stored on failure.
func (o *Orchestrator) GenerateAudioLesson(ctx context.Context, req AudioLessonRequest) (string, error) {
	ctx, span := o.tracer.Start(ctx, "Orchestrator.GenerateAudioLesson")
	defer span.End()

	o.log.Info("[Orchestrator.GenerateAudioLesson] Starting", "title", req.Title, "content_len", len(req.Content))

	in := ai.Input{Content: req.Content, Context: req.Context, Images: req.Images}
	if o.expander != nil {
		in.Content = o.expander.Expand(ctx, in.Content)
	}

	lesson, err := o.gen.AudioLesson(ctx, req.Title, in)
	if err != nil {
		return "", o.fail(span, "generation", err)
	}
	if lesson == nil {
		return "", o.fail(span, "generation", errEmptyLesson)
	}
	if err := ctx.Err(); err != nil {
		return "", o.fail(span, "generation", err)
	}

	m := domain.StudyMaterial{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Content:         narrationHTML(lesson),
		Context:         req.Context,
		Subject:         req.Subject,
		Images:          req.Images,
		CreatedAt:       o.now().UnixMilli(),
		Type:            domain.MaterialAudioLesson,
		AudioLessonData: lesson,
	}
	span.SetAttributes(attribute.String("material.id", m.ID), attribute.Int("lesson.segments", len(lesson.Segments)))

	if err := o.store.AppendMaterial(context.WithoutCancel(ctx), m); err != nil {
		return "", o.fail(span, "persistence", err)
	}

	o.log.Info("[Orchestrator.GenerateAudioLesson] Complete", "material_id", m.ID, "segments", len(lesson.Segments))
	return m.ID, nil
}

// narrationHTML renders the spoken script as paragraphs so the overview
// view has readable content
func narrationHTML(l *domain.AudioLesson) string {
	var sb strings.Builder
	for _, s := range l.Segments {
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(s.Text))
		sb.WriteString("</p>")
	}
	return strings.TrimSpace(sb.String())
}
