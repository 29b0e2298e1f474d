package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
	"go.uber.org/zap"
)

// mockFetcher scripts per-video outcomes: fail the first N attempts, or fail
// forever with N = -1.
type mockFetcher struct {
	mu        sync.Mutex
	failFirst map[string]int
	calls     map[string]int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		failFirst: make(map[string]int),
		calls:     make(map[string]int),
	}
}

func (m *mockFetcher) Fetch(ctx context.Context, video domain.VideoDescriptor, outputDir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[video.ID]++

	remaining := m.failFirst[video.ID]
	if remaining == -1 || m.calls[video.ID] <= remaining {
		return errors.New("fetch failed")
	}
	return nil
}

func (m *mockFetcher) callCount(videoID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[videoID]
}

// mockArchiveStore tracks archived IDs in memory
type mockArchiveStore struct {
	mu        sync.Mutex
	existing  map[string]bool
	recorded  []string
	existsErr error
	recordErr error
}

func newMockArchiveStore() *mockArchiveStore {
	return &mockArchiveStore{existing: make(map[string]bool)}
}

func (m *mockArchiveStore) Exists(dir, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.existing[videoID], nil
}

func (m *mockArchiveStore) Record(dir, videoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.existing[videoID] = true
	m.recorded = append(m.recorded, videoID)
	return nil
}

func (m *mockArchiveStore) recordedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recorded...)
}

// mockHistoryRepo implements domain.HistoryRepository in memory
type mockHistoryRepo struct {
	mu      sync.Mutex
	records map[string]*domain.DownloadRecord
	saves   int
	updates int
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{records: make(map[string]*domain.DownloadRecord)}
}

func (m *mockHistoryRepo) Save(record *domain.DownloadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	m.saves++
	return nil
}

func (m *mockHistoryRepo) Update(record *domain.DownloadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	m.updates++
	return nil
}

func (m *mockHistoryRepo) FindByID(id string) (*domain.DownloadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockHistoryRepo) FindByVideoID(videoID string) ([]*domain.DownloadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.DownloadRecord
	for _, r := range m.records {
		if r.VideoID == videoID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockHistoryRepo) FindRecent(limit int, filters map[string]interface{}) ([]*domain.DownloadRecord, error) {
	return nil, nil
}

func (m *mockHistoryRepo) CountByStatus(status domain.RecordStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, r := range m.records {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockHistoryRepo) GetStats() (*domain.ArchiveStats, error) {
	return &domain.ArchiveStats{}, nil
}

func newTestDownloadManager(fetcher domain.VideoFetcher, store domain.ArchiveStore, repo domain.HistoryRepository) *DownloadManager {
	return NewDownloadManager(fetcher, store, repo, logger.NewSingleLoggerAdapter(zap.NewNop()))
}

func TestProcessDownload_SucceedsFirstAttempt(t *testing.T) {
	fetcher := newMockFetcher()
	store := newMockArchiveStore()
	dm := newTestDownloadManager(fetcher, store, nil)

	video := domain.VideoDescriptor{ID: "v1", Title: "First"}
	record := domain.NewDownloadRecord(video, "@c", "/tmp/archive")

	err := dm.ProcessDownload(context.Background(), record, video)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSucceeded, record.Status)
	assert.Equal(t, 1, record.Attempts)
	assert.Equal(t, []string{"v1"}, store.recordedIDs())
	assert.Equal(t, 1, fetcher.callCount("v1"))
}

func TestProcessDownload_SucceedsAfterTransientFailures(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.failFirst["v1"] = 2
	store := newMockArchiveStore()
	dm := newTestDownloadManager(fetcher, store, nil)

	video := domain.VideoDescriptor{ID: "v1"}
	record := domain.NewDownloadRecord(video, "@c", "/tmp/archive")

	err := dm.ProcessDownload(context.Background(), record, video)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSucceeded, record.Status)
	assert.Equal(t, 3, record.Attempts)
	assert.Equal(t, 3, fetcher.callCount("v1"))
}

func TestProcessDownload_FailsAfterAllAttempts(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.failFirst["v1"] = -1
	store := newMockArchiveStore()
	dm := newTestDownloadManager(fetcher, store, nil)

	video := domain.VideoDescriptor{ID: "v1"}
	record := domain.NewDownloadRecord(video, "@c", "/tmp/archive")

	err := dm.ProcessDownload(context.Background(), record, video)
	require.Error(t, err)

	var dlErr *domain.DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, "v1", dlErr.VideoID)
	assert.Equal(t, 3, dlErr.Attempts)

	assert.Equal(t, domain.StatusFailed, record.Status)
	assert.Equal(t, 3, record.Attempts)
	assert.NotEmpty(t, record.ErrorMessage)
	assert.Empty(t, store.recordedIDs(), "failed downloads must not be recorded as archived")
	assert.Equal(t, 3, fetcher.callCount("v1"))
}

func TestProcessDownload_ToleratesArchiveMarkerFailure(t *testing.T) {
	fetcher := newMockFetcher()
	store := newMockArchiveStore()
	store.recordErr = errors.New("disk full")
	dm := newTestDownloadManager(fetcher, store, nil)

	video := domain.VideoDescriptor{ID: "v1"}
	record := domain.NewDownloadRecord(video, "@c", "/tmp/archive")

	// The download itself succeeded, a marker failure must not demote it
	err := dm.ProcessDownload(context.Background(), record, video)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, record.Status)
}

func TestProcessDownload_PersistsStatusTransitions(t *testing.T) {
	fetcher := newMockFetcher()
	store := newMockArchiveStore()
	repo := newMockHistoryRepo()
	dm := newTestDownloadManager(fetcher, store, repo)

	video := domain.VideoDescriptor{ID: "v1"}
	record := domain.NewDownloadRecord(video, "@c", "/tmp/archive")

	err := dm.ProcessDownload(context.Background(), record, video)
	require.NoError(t, err)

	stored, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, stored.Status)
	assert.GreaterOrEqual(t, repo.updates, 2, "downloading and succeeded must both be written")
}
