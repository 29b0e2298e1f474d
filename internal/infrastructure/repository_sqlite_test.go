package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/yt-archiver-go/internal/domain"
)

func setupTestRepo(t *testing.T) (*SQLiteHistoryRepository, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "repo-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewSQLiteHistoryRepository(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func testRecord(videoID, channel string) *domain.DownloadRecord {
	video := domain.VideoDescriptor{ID: videoID, Title: "Title of " + videoID}
	return domain.NewDownloadRecord(video, channel, "/archive/"+channel)
}

func TestSaveAndFindByID(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	record := testRecord("v1", "@c")
	require.NoError(t, repo.Save(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.VideoID, found.VideoID)
	assert.Equal(t, record.Channel, found.Channel)
	assert.Equal(t, domain.StatusPending, found.Status)
}

func TestFindByID_Missing(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.FindByID("nonexistent")
	assert.Error(t, err)
}

func TestUpdate_PersistsStatusChange(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	record := testRecord("v1", "@c")
	require.NoError(t, repo.Save(record))

	record.MarkDownloading()
	record.MarkSucceeded(2)
	require.NoError(t, repo.Update(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, found.Status)
	assert.Equal(t, 2, found.Attempts)
	require.NotNil(t, found.CompletedAt)
}

func TestFindByVideoID_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	old := testRecord("v1", "@c")
	old.CreatedAt = time.Now().Add(-time.Hour)
	old.MarkFailed(assert.AnError, 3)
	require.NoError(t, repo.Save(old))

	newer := testRecord("v1", "@c")
	newer.MarkSucceeded(1)
	require.NoError(t, repo.Save(newer))

	records, err := repo.FindByVideoID("v1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newer.ID, records[0].ID)
	assert.Equal(t, old.ID, records[1].ID)
}

func TestFindRecent_Filters(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	succeeded := testRecord("v1", "@one")
	succeeded.MarkSucceeded(1)
	require.NoError(t, repo.Save(succeeded))

	failed := testRecord("v2", "@one")
	failed.MarkFailed(assert.AnError, 3)
	require.NoError(t, repo.Save(failed))

	other := testRecord("v3", "@two")
	other.MarkSucceeded(1)
	require.NoError(t, repo.Save(other))

	// No filters returns everything
	all, err := repo.FindRecent(0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Status filter
	bad, err := repo.FindRecent(0, map[string]interface{}{"status": string(domain.StatusFailed)})
	require.NoError(t, err)
	require.Len(t, bad, 1)
	assert.Equal(t, "v2", bad[0].VideoID)

	// Channel filter
	one, err := repo.FindRecent(0, map[string]interface{}{"channel": "@one"})
	require.NoError(t, err)
	assert.Len(t, one, 2)

	// Limit
	limited, err := repo.FindRecent(2, nil)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestCountByStatus(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		record := testRecord("v"+string(rune('1'+i)), "@c")
		record.MarkSucceeded(1)
		require.NoError(t, repo.Save(record))
	}
	skipped := testRecord("v9", "@c")
	skipped.MarkSkippedAspect()
	require.NoError(t, repo.Save(skipped))

	count, err := repo.CountByStatus(domain.StatusSucceeded)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByStatus(domain.StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetStats(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	succeeded := testRecord("v1", "@c")
	succeeded.MarkSucceeded(1)
	require.NoError(t, repo.Save(succeeded))

	aspect := testRecord("v2", "@c")
	aspect.MarkSkippedAspect()
	require.NoError(t, repo.Save(aspect))

	existing := testRecord("v3", "@c")
	existing.MarkSkippedExisting()
	require.NoError(t, repo.Save(existing))

	failed := testRecord("v4", "@c")
	failed.MarkFailed(assert.AnError, 3)
	require.NoError(t, repo.Save(failed))

	pending := testRecord("v5", "@c")
	require.NoError(t, repo.Save(pending))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(1), stats.Succeeded)
	assert.Equal(t, int64(1), stats.SkippedAspect)
	assert.Equal(t, int64(1), stats.SkippedExisting)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(0), stats.Downloading)
}
