package domain

// MaterialType discriminates plain study sets from narrated audio lessons
type MaterialType string

const (
	MaterialText        MaterialType = "text"
	MaterialAudioLesson MaterialType = "audio-lesson"
)

// Image is an embedded input image. Data is serialized as base64 in JSON.
type Image struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// StudyMaterial is one generated study set. It is written once at generation
// time and never updated afterwards; derived artifacts live in side tables
// keyed by ID.
type StudyMaterial struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Content         string       `json:"content"`
	Context         string       `json:"context,omitempty"`
	Subject         string       `json:"subject,omitempty"`
	Images          []Image      `json:"images,omitempty"`
	CreatedAt       int64        `json:"createdAt"`
	Type            MaterialType `json:"type"`
	AudioLessonData *AudioLesson `json:"audioLessonData,omitempty"`
}

// ConceptMapNode is one node of a material's concept tree
type ConceptMapNode struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Details  string            `json:"details,omitempty"`
	Children []*ConceptMapNode `json:"children,omitempty"`
}

// LocationCategory classifies a StudyLocation
type LocationCategory string

const (
	LocationHistorical   LocationCategory = "historical"
	LocationGeographical LocationCategory = "geographical"
	LocationScientific   LocationCategory = "scientific"
	LocationOther        LocationCategory = "other"
)

// NormalizeCategory maps unknown categories to LocationOther
func NormalizeCategory(c string) LocationCategory {
	switch LocationCategory(c) {
	case LocationHistorical, LocationGeographical, LocationScientific:
		return LocationCategory(c)
	default:
		return LocationOther
	}
}

type StudyLocation struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Lat         float64          `json:"lat"`
	Lng         float64          `json:"lng"`
	Category    LocationCategory `json:"category"`
}
