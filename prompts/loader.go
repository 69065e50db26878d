package prompts

import (
	_ "embed"
)

//go:embed summary.txt
var Summary string

//go:embed overview.txt
var Overview string

//go:embed flashcards.txt
var Flashcards string

//go:embed quiz.txt
var Quiz string

//go:embed concept_map.txt
var ConceptMap string

//go:embed locations.txt
var Locations string

//go:embed key_terms.txt
var KeyTerms string

//go:embed context_rubric.txt
var ContextRubric string

// AudioLesson takes the lesson title as its only format argument
//
//go:embed audio_lesson.txt
var AudioLesson string

// Research takes the query as its only format argument
//
//go:embed research.txt
var Research string

//go:embed research_grounded.txt
var ResearchGrounded string

//go:embed tutor.txt
var Tutor string

//go:embed tool_get_study_material.txt
var ToolGetStudyMaterialDesc string

//go:embed tool_define_word.txt
var ToolDefineWordDesc string

//go:embed tool_find_video.txt
var ToolFindVideoDesc string
