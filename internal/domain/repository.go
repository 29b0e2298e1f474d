package domain

// HistoryRepository defines the interface for cross-run record persistence
type HistoryRepository interface {
	// Save creates a new download record
	Save(record *DownloadRecord) error

	// Update updates an existing download record
	Update(record *DownloadRecord) error

	// FindByID finds a record by ID
	FindByID(id string) (*DownloadRecord, error)

	// FindByVideoID finds records for a video ID, newest first
	FindByVideoID(videoID string) ([]*DownloadRecord, error)

	// FindRecent finds the most recent records with optional filters
	FindRecent(limit int, filters map[string]interface{}) ([]*DownloadRecord, error)

	// CountByStatus returns the number of records with the given status
	CountByStatus(status RecordStatus) (int64, error)

	// GetStats returns archive statistics across all runs
	GetStats() (*ArchiveStats, error)
}

// ArchiveStats represents per-status record counts
type ArchiveStats struct {
	Total           int64 `json:"total"`
	Pending         int64 `json:"pending"`
	Downloading     int64 `json:"downloading"`
	Succeeded       int64 `json:"succeeded"`
	SkippedAspect   int64 `json:"skipped_aspect"`
	SkippedExisting int64 `json:"skipped_existing"`
	Failed          int64 `json:"failed"`
}
