package domain

// AudioLesson is a pre-scripted narrated lesson. It is generated in one shot
// and embedded in its owning StudyMaterial.
type AudioLesson struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Segments  []AudioLessonSegment `json:"segments"`
	FinalTest []QuizQuestion       `json:"finalTest"`
}

type AudioLessonSegment struct {
	Text       string        `json:"text"`
	Quiz       *QuizQuestion `json:"quiz,omitempty"`
	VideoQuery string        `json:"videoQuery,omitempty"`
}
