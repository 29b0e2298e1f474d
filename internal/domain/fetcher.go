package domain

import "context"

// VideoFetcher downloads one video's media, metadata, and transcript into a
// directory as a single unit of work. An error means the whole attempt
// failed; callers re-invoke the full fetch rather than resuming partial
// artifact sets.
type VideoFetcher interface {
	Fetch(ctx context.Context, video VideoDescriptor, outputDir string) error
}
