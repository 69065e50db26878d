package ai

import (
	"bytes"
	"context"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/amityadav/studybuddy/internal/logger"
	"google.golang.org/genai"
)

const defaultSampleRate = 24000

// Speaker turns narration text into WAV audio with Gemini TTS
type Speaker struct {
	client *genai.Client
	model  string
	voice  string
	log    *logger.Logger
}

func NewSpeaker(client *genai.Client, model, voice string, log *logger.Logger) *Speaker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Speaker{client: client, model: model, voice: voice, log: log.With("component", "Speaker")}
}

// Synthesize returns WAV bytes, or ok=false when no audio could be produced.
// Failures are logged, never returned.
func (s *Speaker) Synthesize(ctx context.Context, text string) ([]byte, bool) {
	if s.client == nil || strings.TrimSpace(text) == "" {
		return nil, false
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(text), cfg)
	if err != nil {
		s.log.Warn("[Speaker.Synthesize] TTS request failed", "error", err)
		return nil, false
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		s.log.Warn("[Speaker.Synthesize] TTS returned no candidates")
		return nil, false
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.InlineData == nil || len(p.InlineData.Data) == 0 {
			continue
		}
		if strings.Contains(p.InlineData.MIMEType, "wav") {
			return p.InlineData.Data, true
		}
		return pcmToWAV(p.InlineData.Data, sampleRate(p.InlineData.MIMEType)), true
	}
	s.log.Warn("[Speaker.Synthesize] TTS response had no audio part")
	return nil, false
}

// sampleRate reads "rate=NNNN" from an audio/L16 mime type
func sampleRate(mime string) int {
	for _, field := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(field), "=")
		if ok && k == "rate" {
			if r, err := strconv.Atoi(v); err == nil && r > 0 {
				return r
			}
		}
	}
	return defaultSampleRate
}

// pcmToWAV wraps 16-bit mono little-endian PCM in a RIFF header
func pcmToWAV(pcm []byte, rate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8
	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
