package tools

import (
	"testing"

	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/domain"
)

func TestMaterialText(t *testing.T) {
	text := core.Bundle{
		Material: domain.StudyMaterial{Type: domain.MaterialText, Content: "raw notes"},
		Overview: "<p>overview</p>",
	}
	if got := materialText(text); got != "<p>overview</p>\n\nraw notes" {
		t.Errorf("text material: got %q", got)
	}

	lesson := core.Bundle{
		Material: domain.StudyMaterial{
			Type:    domain.MaterialAudioLesson,
			Content: "<p>escaped</p>",
			AudioLessonData: &domain.AudioLesson{Segments: []domain.AudioLessonSegment{
				{Text: "First part."}, {Text: "Second part."},
			}},
		},
	}
	if got := materialText(lesson); got != "First part.\n\nSecond part." {
		t.Errorf("audio lesson: got %q", got)
	}
}

func TestAll_BuildsThreeTools(t *testing.T) {
	all, err := All(nil, nil, nil)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	names := map[string]bool{}
	for _, tl := range all {
		names[tl.Name()] = true
	}
	for _, want := range []string{"get_study_material", "define_word", "find_video"} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
}
