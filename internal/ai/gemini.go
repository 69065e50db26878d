package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/search"
	"github.com/amityadav/studybuddy/prompts"
	"google.golang.org/genai"
)

// GeminiGenerator implements Generator and Researcher on the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
	limits Limits
	log    *logger.Logger
}

func NewGeminiGenerator(client *genai.Client, model string, limits Limits, log *logger.Logger) *GeminiGenerator {
	if log == nil {
		log = logger.NewNop()
	}
	return &GeminiGenerator{
		client: client,
		model:  model,
		limits: limits,
		log:    log.With("component", "GeminiGenerator", "model", model),
	}
}

func (g *GeminiGenerator) Summary(ctx context.Context, in Input) (string, error) {
	return g.generate(ctx, "Summary", prompts.Summary, in, false)
}

func (g *GeminiGenerator) Overview(ctx context.Context, in Input) (string, error) {
	return g.generate(ctx, "Overview", prompts.Overview, in, false)
}

func (g *GeminiGenerator) Flashcards(ctx context.Context, in Input) ([]domain.Flashcard, error) {
	raw, err := generateJSON[[]rawFlashcard](ctx, g, "Flashcards", prompts.Flashcards, in)
	if err != nil {
		return nil, err
	}
	return normalizeFlashcards(raw), nil
}

func (g *GeminiGenerator) Quiz(ctx context.Context, in Input) ([]domain.QuizQuestion, error) {
	raw, err := generateJSON[[]domain.QuizQuestion](ctx, g, "Quiz", prompts.Quiz, in)
	if err != nil {
		return nil, err
	}
	return normalizeQuiz(raw), nil
}

func (g *GeminiGenerator) ConceptMap(ctx context.Context, in Input) (*domain.ConceptMapNode, error) {
	raw, err := generateJSON[*domain.ConceptMapNode](ctx, g, "ConceptMap", prompts.ConceptMap, in)
	if err != nil {
		return nil, err
	}
	root := normalizeConceptMap(raw)
	if root == nil {
		return nil, errors.New("concept map has no root label")
	}
	return root, nil
}

func (g *GeminiGenerator) Locations(ctx context.Context, in Input) ([]domain.StudyLocation, error) {
	raw, err := generateJSON[[]rawLocation](ctx, g, "Locations", prompts.Locations, in)
	if err != nil {
		return nil, err
	}
	return normalizeLocations(raw), nil
}

func (g *GeminiGenerator) KeyTerms(ctx context.Context, in Input) ([]string, error) {
	raw, err := generateJSON[[]string](ctx, g, "KeyTerms", prompts.KeyTerms, in)
	if err != nil {
		return nil, err
	}
	return normalizeKeyTerms(raw), nil
}

func (g *GeminiGenerator) AudioLesson(ctx context.Context, title string, in Input) (*domain.AudioLesson, error) {
	raw, err := generateJSON[domain.AudioLesson](ctx, g, "AudioLesson", fmt.Sprintf(prompts.AudioLesson, title), in)
	if err != nil {
		return nil, err
	}
	return normalizeLesson(title, raw)
}

// Research writes a report from articles gathered by search providers
func (g *GeminiGenerator) Research(ctx context.Context, query string, articles []search.Article) (ResearchReport, error) {
	var sb strings.Builder
	sources := make([]Citation, 0, len(articles))
	seen := map[string]bool{}
	for _, a := range articles {
		fmt.Fprintf(&sb, "Title: %s\nURL: %s\nContent: %s\nSource: %s\n---\n", a.Title, a.URL, a.Snippet, a.Provider)
		if a.URL != "" && !seen[a.URL] {
			seen[a.URL] = true
			sources = append(sources, Citation{Title: a.Title, URI: a.URL})
		}
	}

	report, err := generateJSON[ResearchReport](ctx, g, "Research", fmt.Sprintf(prompts.Research, query), Input{Content: sb.String()})
	if err != nil {
		return ResearchReport{}, err
	}
	report.Sources = sources
	return finishReport(report), nil
}

// GroundedResearch lets Gemini's Google Search tool find the sources
func (g *GeminiGenerator) GroundedResearch(ctx context.Context, query string) (ResearchReport, error) {
	if g.client == nil {
		return ResearchReport{}, ErrMissingCredential
	}
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(prompts.ResearchGrounded, query), genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	g.log.Info("[GeminiGenerator.GroundedResearch] Sending request", "query", query)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return ResearchReport{}, fmt.Errorf("grounded research request failed: %w", err)
	}

	report, err := decodeJSON[ResearchReport](resp.Text())
	if err != nil {
		return ResearchReport{}, err
	}
	report.Sources = groundingSources(resp)
	return finishReport(report), nil
}

func groundingSources(resp *genai.GenerateContentResponse) []Citation {
	out := []Citation{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}
	seen := map[string]bool{}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		out = append(out, Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return out
}

func finishReport(r ResearchReport) ResearchReport {
	if r.Timeline == nil {
		r.Timeline = []string{}
	}
	if r.Sources == nil {
		r.Sources = []Citation{}
	}
	return r
}

// parts builds the user turn: instruction, optional rubric, material, images
func (g *GeminiGenerator) parts(instruction string, in Input) []*genai.Part {
	in = g.limits.Apply(in)

	var sb strings.Builder
	sb.WriteString(instruction)
	if strings.TrimSpace(in.Context) != "" {
		sb.WriteString("\n\n")
		sb.WriteString(prompts.ContextRubric)
		sb.WriteString(in.Context)
	}
	sb.WriteString("\n\nMaterial:\n")
	sb.WriteString(in.Content)

	parts := []*genai.Part{genai.NewPartFromText(sb.String())}
	for _, img := range in.Images {
		if len(img.Data) == 0 {
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MimeType))
	}
	return parts
}

func (g *GeminiGenerator) generate(ctx context.Context, op, instruction string, in Input, jsonMode bool) (string, error) {
	if g.client == nil {
		return "", ErrMissingCredential
	}
	parts := g.parts(instruction, in)
	cfg := &genai.GenerateContentConfig{}
	if jsonMode {
		cfg.ResponseMIMEType = "application/json"
	}

	g.log.Debug("[GeminiGenerator."+op+"] Sending request", "est_tokens", EstimateTokens(parts[0].Text), "images", len(parts)-1)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", strings.ToLower(op), err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: empty response", strings.ToLower(op))
	}
	g.log.Debug("[GeminiGenerator."+op+"] Success", "response_len", len(text))
	return text, nil
}

func generateJSON[T any](ctx context.Context, g *GeminiGenerator, op, instruction string, in Input) (T, error) {
	var zero T
	text, err := g.generate(ctx, op, instruction, in, true)
	if err != nil {
		return zero, err
	}
	v, err := decodeJSON[T](text)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", strings.ToLower(op), err)
	}
	return v, nil
}
