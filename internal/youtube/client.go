package youtube

import (
	"context"
	"errors"
	"fmt"

	"github.com/amityadav/studybuddy/internal/logger"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

var (
	ErrNoResults     = errors.New("youtube: no matching video")
	ErrNotConfigured = errors.New("youtube: api key not configured")
)

// Video is the first search hit for a query
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}

// Client searches the YouTube Data API
type Client struct {
	svc *yt.Service
	log *logger.Logger
}

// NewClient builds a client from an API key. Extra options are appended,
// e.g. option.WithEndpoint in tests. An empty key yields a client whose
// searches fail with ErrNotConfigured.
func NewClient(ctx context.Context, apiKey string, log *logger.Logger, opts ...option.ClientOption) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Client{log: log.With("component", "YouTube")}
	if apiKey == "" {
		return c, nil
	}
	svc, err := yt.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// Search returns the first embeddable video matching query
func (c *Client) Search(ctx context.Context, query string) (Video, error) {
	if c.svc == nil {
		return Video{}, ErrNotConfigured
	}
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		SafeSearch("strict").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return Video{}, fmt.Errorf("youtube search failed: %w", err)
	}

	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		v := Video{
			ID:      item.Id.VideoId,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
		}
		if th := item.Snippet.Thumbnails; th != nil {
			switch {
			case th.High != nil:
				v.Thumbnail = th.High.Url
			case th.Medium != nil:
				v.Thumbnail = th.Medium.Url
			case th.Default != nil:
				v.Thumbnail = th.Default.Url
			}
		}
		c.log.Debug("[YouTube.Search] found", "query", query, "video_id", v.ID)
		return v, nil
	}
	return Video{}, fmt.Errorf("%q: %w", query, ErrNoResults)
}
