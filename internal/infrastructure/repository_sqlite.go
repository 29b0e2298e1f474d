package infrastructure

import (
	"fmt"

	"github.com/yourusername/yt-archiver-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository creates a new SQLite repository
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.DownloadRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Save creates a new download record
func (r *SQLiteHistoryRepository) Save(record *domain.DownloadRecord) error {
	return r.db.Create(record).Error
}

// Update updates an existing download record
func (r *SQLiteHistoryRepository) Update(record *domain.DownloadRecord) error {
	return r.db.Save(record).Error
}

// FindByID finds a record by ID
func (r *SQLiteHistoryRepository) FindByID(id string) (*domain.DownloadRecord, error) {
	var record domain.DownloadRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByVideoID finds records for a video ID, newest first
func (r *SQLiteHistoryRepository) FindByVideoID(videoID string) ([]*domain.DownloadRecord, error) {
	var records []*domain.DownloadRecord
	err := r.db.Where("video_id = ?", videoID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// FindRecent finds the most recent records with optional filters
func (r *SQLiteHistoryRepository) FindRecent(limit int, filters map[string]interface{}) ([]*domain.DownloadRecord, error) {
	var records []*domain.DownloadRecord
	query := r.db

	for key, value := range filters {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("created_at DESC").Find(&records).Error
	return records, err
}

// CountByStatus returns the number of records with the given status
func (r *SQLiteHistoryRepository) CountByStatus(status domain.RecordStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.DownloadRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// GetStats returns archive statistics across all runs
func (r *SQLiteHistoryRepository) GetStats() (*domain.ArchiveStats, error) {
	stats := &domain.ArchiveStats{}

	if err := r.db.Model(&domain.DownloadRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		Status domain.RecordStatus
		Count  int64
	}{}

	if err := r.db.Model(&domain.DownloadRecord{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case domain.StatusPending:
			stats.Pending = sc.Count
		case domain.StatusDownloading:
			stats.Downloading = sc.Count
		case domain.StatusSucceeded:
			stats.Succeeded = sc.Count
		case domain.StatusSkippedAspect:
			stats.SkippedAspect = sc.Count
		case domain.StatusSkippedExisting:
			stats.SkippedExisting = sc.Count
		case domain.StatusFailed:
			stats.Failed = sc.Count
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
