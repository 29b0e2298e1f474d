package domain

// ArchiveStore answers whether a video is already archived in an output
// directory, and records new arrivals. Injectable so tests can substitute an
// in-memory implementation for the on-disk one.
type ArchiveStore interface {
	// Exists reports whether the directory already holds the video
	Exists(dir, videoID string) (bool, error)

	// Record marks the video as archived in the directory
	Record(dir, videoID string) error
}
