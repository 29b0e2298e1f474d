package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordStatus represents the current status of a per-video download record
type RecordStatus string

const (
	StatusPending         RecordStatus = "pending"
	StatusDownloading     RecordStatus = "downloading"
	StatusSucceeded       RecordStatus = "succeeded"
	StatusSkippedAspect   RecordStatus = "skipped_aspect"
	StatusSkippedExisting RecordStatus = "skipped_existing"
	StatusFailed          RecordStatus = "failed"
)

// DownloadRecord tracks one video through a run. Created when a descriptor
// enters processing, mutated only by the task handling that video, never
// revisited within a run once terminal.
type DownloadRecord struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	VideoID      string       `json:"video_id" gorm:"not null;index"`
	Channel      string       `json:"channel" gorm:"index"`
	Title        string       `json:"title"`
	OutputDir    string       `json:"output_dir" gorm:"not null"`
	Status       RecordStatus `json:"status" gorm:"not null;index"`
	Attempts     int          `json:"attempts" gorm:"default:0"`
	ErrorMessage string       `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time   `json:"started_at,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}

// NewDownloadRecord creates a pending record for one listed video
func NewDownloadRecord(video VideoDescriptor, channel, outputDir string) *DownloadRecord {
	return &DownloadRecord{
		ID:        uuid.New().String(),
		VideoID:   video.ID,
		Channel:   channel,
		Title:     video.Title,
		OutputDir: outputDir,
		Status:    StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkDownloading marks the record as actively downloading
func (r *DownloadRecord) MarkDownloading() {
	r.Status = StatusDownloading
	now := time.Now()
	r.StartedAt = &now
	r.UpdatedAt = now
}

// MarkSucceeded marks the record as fully archived
func (r *DownloadRecord) MarkSucceeded(attempts int) {
	r.Status = StatusSucceeded
	r.Attempts = attempts
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkSkippedAspect marks the record as excluded by the aspect filter
func (r *DownloadRecord) MarkSkippedAspect() {
	r.markSkipped(StatusSkippedAspect)
}

// MarkSkippedExisting marks the record as already present in the archive
func (r *DownloadRecord) MarkSkippedExisting() {
	r.markSkipped(StatusSkippedExisting)
}

func (r *DownloadRecord) markSkipped(status RecordStatus) {
	r.Status = status
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed marks the record as failed after exhausting attempts
func (r *DownloadRecord) MarkFailed(err error, attempts int) {
	r.Status = StatusFailed
	r.Attempts = attempts
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// IsTerminal checks if the record reached a final state
func (r *DownloadRecord) IsTerminal() bool {
	switch r.Status {
	case StatusSucceeded, StatusSkippedAspect, StatusSkippedExisting, StatusFailed:
		return true
	}
	return false
}

// WasSkipped checks if the record was skipped without any fetch
func (r *DownloadRecord) WasSkipped() bool {
	return r.Status == StatusSkippedAspect || r.Status == StatusSkippedExisting
}
