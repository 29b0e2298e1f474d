package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidReference indicates a channel reference that matches none of the
// recognized shapes (videos URL, watch URL, @handle, UC channel ID, plain URL).
var ErrInvalidReference = errors.New("archiver: invalid channel reference")

// InvalidReferenceError wraps ErrInvalidReference with the offending input.
type InvalidReferenceError struct {
	Reference string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("archiver: invalid channel reference %q", e.Reference)
}

func (e *InvalidReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// ListingError indicates the channel listing could not be fetched or parsed.
// It is channel-fatal: processing of that channel stops, the run continues.
type ListingError struct {
	ChannelURL string
	Err        error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("archiver: listing %s failed: %v", e.ChannelURL, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// DownloadError indicates a video download failed after all retry attempts.
// It is video-fatal: the video gets a Failed status, the channel continues.
type DownloadError struct {
	VideoID  string
	Attempts int
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("archiver: download of %s failed after %d attempts: %v", e.VideoID, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
