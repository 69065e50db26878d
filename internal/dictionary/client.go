package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amityadav/studybuddy/internal/logger"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

var ErrNotFound = errors.New("dictionary: word not found")

type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Entry is one dictionary result
type Entry struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic"`
	AudioURL string    `json:"audioUrl,omitempty"`
	Meanings []Meaning `json:"meanings"`
}

// Client looks words up in the free dictionaryapi.dev service
type Client struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewClient(log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With("component", "Dictionary"),
	}
}

// WithBaseURL points the client at another endpoint, for tests
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []Meaning `json:"meanings"`
}

// Lookup returns the first entry for word, or ErrNotFound
func (c *Client) Lookup(ctx context.Context, word string) (Entry, error) {
	word = strings.TrimSpace(strings.ToLower(word))
	if word == "" {
		return Entry{}, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Debug("[Dictionary.Lookup] not found", "word", word)
		return Entry{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Entry{}, fmt.Errorf("api error: %d %s", resp.StatusCode, string(body))
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return Entry{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	return toEntry(entries[0]), nil
}

func toEntry(a apiEntry) Entry {
	e := Entry{Word: a.Word, Phonetic: a.Phonetic, Meanings: a.Meanings}
	for _, p := range a.Phonetics {
		if e.Phonetic == "" && p.Text != "" {
			e.Phonetic = p.Text
		}
		if e.AudioURL == "" && p.Audio != "" {
			e.AudioURL = p.Audio
		}
	}
	if e.Meanings == nil {
		e.Meanings = []Meaning{}
	}
	return e
}
