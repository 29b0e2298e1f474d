package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"go.uber.org/zap"
)

// YtdlpLister lists channel videos through yt-dlp's flat playlist mode: one
// JSON document per channel, descriptors only, no per-video detail fetch.
type YtdlpLister struct {
	cookiesFile string
	logger      *zap.Logger
}

// NewYtdlpLister creates a new lister. cookiesFile may be empty.
func NewYtdlpLister(cookiesFile string, logger *zap.Logger) *YtdlpLister {
	return &YtdlpLister{
		cookiesFile: cookiesFile,
		logger:      logger,
	}
}

// List fetches the shallow listing for a canonical videos URL. A watch URL
// yields a single-video document and therefore a single descriptor.
func (l *YtdlpLister) List(ctx context.Context, channelURL string) ([]domain.VideoDescriptor, error) {
	dl := ytdlp.New().
		FlatPlaylist().
		DumpSingleJSON().
		SkipDownload().
		Quiet().
		NoWarnings()

	if l.cookiesFile != "" && fileExists(l.cookiesFile) {
		dl = dl.Cookies(l.cookiesFile)
	}

	l.logger.Debug("Listing channel", zap.String("url", channelURL))

	result, err := dl.Run(ctx, channelURL)
	if err != nil {
		return nil, &domain.ListingError{ChannelURL: channelURL, Err: err}
	}

	videos, err := parseListing([]byte(result.Stdout))
	if err != nil {
		return nil, &domain.ListingError{ChannelURL: channelURL, Err: err}
	}

	l.logger.Debug("Listing complete",
		zap.String("url", channelURL),
		zap.Int("videos", len(videos)))

	return videos, nil
}

// parseListing decodes the single JSON document yt-dlp prints for a flat
// listing. Playlist documents contribute their entries, possibly nested one
// level per channel tab; a bare video document yields one descriptor.
func parseListing(data []byte) ([]domain.VideoDescriptor, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty listing output")
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse listing output: %w", err)
	}

	if _, ok := doc["entries"]; !ok {
		video, ok := descriptorFromEntry(doc)
		if !ok {
			return nil, fmt.Errorf("listing output has neither entries nor a video id")
		}
		return []domain.VideoDescriptor{video}, nil
	}

	return collectEntries(doc, nil), nil
}

// collectEntries walks a playlist document, flattening nested playlists
func collectEntries(doc map[string]interface{}, out []domain.VideoDescriptor) []domain.VideoDescriptor {
	entries, ok := doc["entries"].([]interface{})
	if !ok {
		return out
	}

	for _, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if _, nested := entry["entries"]; nested {
			out = collectEntries(entry, out)
			continue
		}
		if video, ok := descriptorFromEntry(entry); ok {
			out = append(out, video)
		}
	}

	return out
}

// descriptorFromEntry builds a descriptor from one listing entry, keeping
// the raw fields attached. Entries without an id are not videos.
func descriptorFromEntry(entry map[string]interface{}) (domain.VideoDescriptor, bool) {
	id := getStringField(entry, "id")
	if id == "" {
		return domain.VideoDescriptor{}, false
	}

	url := getStringField(entry, "url")
	if url == "" {
		url = getStringField(entry, "webpage_url")
	}

	return domain.VideoDescriptor{
		ID:          id,
		Title:       getStringField(entry, "title"),
		URL:         url,
		Width:       getIntField(entry, "width"),
		Height:      getIntField(entry, "height"),
		AspectRatio: getFloatField(entry, "aspect_ratio"),
		Raw:         entry,
	}, true
}

// getStringField safely extracts a string from a decoded JSON object
func getStringField(data map[string]interface{}, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

// getIntField safely extracts an integer from a decoded JSON object
func getIntField(data map[string]interface{}, key string) int {
	if val, ok := data[key].(float64); ok {
		return int(val)
	}
	return 0
}

// getFloatField safely extracts a float from a decoded JSON object
func getFloatField(data map[string]interface{}, key string) float64 {
	if val, ok := data[key].(float64); ok {
		return val
	}
	return 0
}
