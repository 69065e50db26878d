package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/dictionary"
	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/youtube"
	"github.com/amityadav/studybuddy/prompts"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// maxMaterialChars bounds how much material text one tool call can return
const maxMaterialChars = 12000

// MaterialReader loads a material with its side tables
type MaterialReader interface {
	LoadBundle(ctx context.Context, id string) (core.Bundle, bool)
}

// WordLookup resolves dictionary entries
type WordLookup interface {
	Lookup(ctx context.Context, word string) (dictionary.Entry, error)
}

// VideoFinder resolves a query to one video
type VideoFinder interface {
	Search(ctx context.Context, query string) (youtube.Video, error)
}

type GetStudyMaterialArgs struct {
	MaterialID string `json:"material_id"`
}

type GetStudyMaterialResult struct {
	Found    bool     `json:"found"`
	Title    string   `json:"title,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Text     string   `json:"text,omitempty"`
	KeyTerms []string `json:"key_terms,omitempty"`
}

// NewGetStudyMaterialTool exposes the current material to the tutor
func NewGetStudyMaterialTool(lib MaterialReader) (tool.Tool, error) {
	handler := func(ctx tool.Context, args GetStudyMaterialArgs) (GetStudyMaterialResult, error) {
		b, found := lib.LoadBundle(ctx, strings.TrimSpace(args.MaterialID))
		if !found {
			return GetStudyMaterialResult{Found: false}, nil
		}
		return GetStudyMaterialResult{
			Found:    true,
			Title:    b.Material.Title,
			Subject:  b.Material.Subject,
			Text:     ai.TruncateToLimit(materialText(b), maxMaterialChars),
			KeyTerms: b.KeyTerms,
		}, nil
	}
	return functiontool.New(functiontool.Config{
		Name:        "get_study_material",
		Description: prompts.ToolGetStudyMaterialDesc,
	}, handler)
}

// materialText prefers the narration for audio lessons, then the summary
// overview, then raw content
func materialText(b core.Bundle) string {
	if b.Material.Type == domain.MaterialAudioLesson && b.Material.AudioLessonData != nil {
		var sb strings.Builder
		for _, seg := range b.Material.AudioLessonData.Segments {
			sb.WriteString(seg.Text)
			sb.WriteString("\n\n")
		}
		return strings.TrimSpace(sb.String())
	}
	var parts []string
	if b.Overview != "" {
		parts = append(parts, b.Overview)
	}
	if b.Material.Content != "" {
		parts = append(parts, b.Material.Content)
	}
	return strings.Join(parts, "\n\n")
}

type DefineWordArgs struct {
	Word string `json:"word"`
}

type DefineWordResult struct {
	Found    bool   `json:"found"`
	Word     string `json:"word"`
	Phonetic string `json:"phonetic,omitempty"`
	Meanings string `json:"meanings,omitempty"`
}

// NewDefineWordTool looks a word up in the dictionary
func NewDefineWordTool(dict WordLookup) (tool.Tool, error) {
	handler := func(ctx tool.Context, args DefineWordArgs) (DefineWordResult, error) {
		entry, err := dict.Lookup(ctx, args.Word)
		if errors.Is(err, dictionary.ErrNotFound) {
			return DefineWordResult{Found: false, Word: args.Word}, nil
		}
		if err != nil {
			return DefineWordResult{}, fmt.Errorf("dictionary lookup failed: %w", err)
		}

		var sb strings.Builder
		for _, m := range entry.Meanings {
			for i, d := range m.Definitions {
				if i == 2 {
					break
				}
				fmt.Fprintf(&sb, "(%s) %s\n", m.PartOfSpeech, d.Definition)
			}
		}
		return DefineWordResult{
			Found:    true,
			Word:     entry.Word,
			Phonetic: entry.Phonetic,
			Meanings: strings.TrimSpace(sb.String()),
		}, nil
	}
	return functiontool.New(functiontool.Config{
		Name:        "define_word",
		Description: prompts.ToolDefineWordDesc,
	}, handler)
}

type FindVideoArgs struct {
	Query string `json:"query"`
}

type FindVideoResult struct {
	Found   bool   `json:"found"`
	VideoID string `json:"video_id,omitempty"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
}

// NewFindVideoTool finds one educational video for a query
func NewFindVideoTool(videos VideoFinder) (tool.Tool, error) {
	handler := func(ctx tool.Context, args FindVideoArgs) (FindVideoResult, error) {
		v, err := videos.Search(ctx, args.Query)
		if errors.Is(err, youtube.ErrNoResults) || errors.Is(err, youtube.ErrNotConfigured) {
			return FindVideoResult{Found: false}, nil
		}
		if err != nil {
			return FindVideoResult{}, fmt.Errorf("video search failed: %w", err)
		}
		return FindVideoResult{
			Found:   true,
			VideoID: v.ID,
			Title:   v.Title,
			URL:     "https://www.youtube.com/watch?v=" + v.ID,
		}, nil
	}
	return functiontool.New(functiontool.Config{
		Name:        "find_video",
		Description: prompts.ToolFindVideoDesc,
	}, handler)
}

// All builds the tutor's tool set
func All(lib MaterialReader, dict WordLookup, videos VideoFinder) ([]tool.Tool, error) {
	material, err := NewGetStudyMaterialTool(lib)
	if err != nil {
		return nil, err
	}
	define, err := NewDefineWordTool(dict)
	if err != nil {
		return nil, err
	}
	video, err := NewFindVideoTool(videos)
	if err != nil {
		return nil, err
	}
	return []tool.Tool{material, define, video}, nil
}
