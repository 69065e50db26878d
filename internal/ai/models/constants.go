package models

const (
	// === Gemini Models ===
	ModelGemini25Flash     = "gemini-2.5-flash"
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"
	ModelGemini25Pro       = "gemini-2.5-pro"
	ModelGemini25FlashTTS  = "gemini-2.5-flash-preview-tts"
)

const (
	// === Task-Specific Default Models ===

	// TaskGenerationModel: structured JSON study artifacts
	TaskGenerationModel = ModelGemini25Flash

	// TaskTutorModel: tool use inside the chat agent
	TaskTutorModel = ModelGemini25Flash

	// TaskSpeechModel: narration
	TaskSpeechModel = ModelGemini25FlashTTS

	// DefaultVoice is a prebuilt Gemini voice
	DefaultVoice = "Kore"
)
