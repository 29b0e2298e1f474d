package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
	"go.uber.org/zap"
)

// mockLister returns a scripted listing and records the URLs it was asked for
type mockLister struct {
	mu     sync.Mutex
	videos []domain.VideoDescriptor
	err    error
	urls   []string
}

func (m *mockLister) List(ctx context.Context, channelURL string) ([]domain.VideoDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, channelURL)
	if m.err != nil {
		return nil, m.err
	}
	return m.videos, nil
}

func (m *mockLister) requestedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}

func newTestProcessor(lister domain.VideoLister, fetcher domain.VideoFetcher, store domain.ArchiveStore, repo domain.HistoryRepository) *ChannelProcessor {
	logs := logger.NewSingleLoggerAdapter(zap.NewNop())
	downloadMgr := NewDownloadManager(fetcher, store, repo, logs)
	config := &domain.DownloadConfig{MaxConcurrent: 2, RateLimitSeconds: 0}
	return NewChannelProcessor(lister, downloadMgr, store, repo, config, logs)
}

func TestProcessChannel_MixedOutcomes(t *testing.T) {
	lister := &mockLister{videos: []domain.VideoDescriptor{
		{ID: "ok-1", Title: "Landscape", Width: 1920, Height: 1080},
		{ID: "portrait", Title: "Vertical clip", Width: 1080, Height: 1920},
		{ID: "archived", Title: "Old"},
		{ID: "ok-2", Title: "Another"},
		{ID: "broken", Title: "Always fails"},
	}}
	fetcher := newMockFetcher()
	fetcher.failFirst["broken"] = -1
	store := newMockArchiveStore()
	store.existing["archived"] = true
	repo := newMockHistoryRepo()

	processor := newTestProcessor(lister, fetcher, store, repo)
	summary := processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "@mixed"}, t.TempDir())

	assert.False(t, summary.ChannelFailed)
	assert.Equal(t, 5, summary.Listed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.SkippedAspect)
	assert.Equal(t, 1, summary.SkippedExisting)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, summary.Listed, summary.Total(), "every listed video must reach a terminal status")

	// Skipped videos never reach the fetcher
	assert.Equal(t, 0, fetcher.callCount("portrait"))
	assert.Equal(t, 0, fetcher.callCount("archived"))
	assert.Equal(t, 3, fetcher.callCount("broken"))

	// One record per video, all terminal
	assert.Equal(t, 5, repo.saves)
	for _, record := range repo.records {
		assert.True(t, record.IsTerminal(), "record %s left non-terminal", record.VideoID)
	}
}

func TestProcessChannel_InvalidReference(t *testing.T) {
	lister := &mockLister{}
	processor := newTestProcessor(lister, newMockFetcher(), newMockArchiveStore(), nil)

	summary := processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "not-a-valid-ref!!"}, t.TempDir())

	assert.True(t, summary.ChannelFailed)
	assert.NotEmpty(t, summary.FailureReason)
	assert.Empty(t, lister.requestedURLs(), "an unresolvable reference must not be listed")
}

func TestProcessChannel_ListingFailure(t *testing.T) {
	lister := &mockLister{err: &domain.ListingError{ChannelURL: "https://www.youtube.com/@gone/videos", Err: assert.AnError}}
	processor := newTestProcessor(lister, newMockFetcher(), newMockArchiveStore(), nil)

	summary := processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "@gone"}, t.TempDir())

	assert.True(t, summary.ChannelFailed)
	assert.Equal(t, 0, summary.Listed)
	assert.Contains(t, summary.FailureReason, "listing")
}

func TestProcessChannel_DeduplicatesListing(t *testing.T) {
	lister := &mockLister{videos: []domain.VideoDescriptor{
		{ID: "v1", Title: "First"},
		{ID: "v2", Title: "Second"},
		{ID: "v1", Title: "First again"},
	}}
	fetcher := newMockFetcher()
	processor := newTestProcessor(lister, fetcher, newMockArchiveStore(), nil)

	summary := processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "@dup"}, t.TempDir())

	assert.Equal(t, 2, summary.Listed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, fetcher.callCount("v1"), "a duplicated ID must download once")
}

func TestProcessChannel_StoreErrorFallsBackToDownload(t *testing.T) {
	lister := &mockLister{videos: []domain.VideoDescriptor{{ID: "v1"}}}
	fetcher := newMockFetcher()
	store := newMockArchiveStore()
	store.existsErr = assert.AnError

	processor := newTestProcessor(lister, fetcher, store, nil)
	summary := processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "@flaky"}, t.TempDir())

	// An unreadable store must not lose videos
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 0, summary.SkippedExisting)
	assert.Equal(t, 1, fetcher.callCount("v1"))
}

func TestProcessChannel_EmptyListing(t *testing.T) {
	lister := &mockLister{}
	processor := newTestProcessor(lister, newMockFetcher(), newMockArchiveStore(), nil)

	summary := processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "@empty"}, t.TempDir())

	assert.False(t, summary.ChannelFailed)
	assert.Equal(t, 0, summary.Listed)
	assert.Equal(t, 0, summary.Total())
}

func TestProcessChannel_PassesResolvedURLToLister(t *testing.T) {
	lister := &mockLister{}
	processor := newTestProcessor(lister, newMockFetcher(), newMockArchiveStore(), nil)

	processor.ProcessChannel(context.Background(), domain.ChannelSpec{Reference: "@SomeChannel"}, t.TempDir())

	require.Equal(t, []string{"https://www.youtube.com/@SomeChannel/videos"}, lister.requestedURLs())
}
