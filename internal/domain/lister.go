package domain

import "context"

// VideoLister enumerates a channel's videos in shallow mode: descriptors
// only, no per-video detail fetch. The returned slice follows listing order
// and is finite; every call re-queries the source.
type VideoLister interface {
	// List returns descriptors for the canonical videos URL. Failure to
	// reach or parse the channel surfaces as a *ListingError.
	List(ctx context.Context, channelURL string) ([]VideoDescriptor, error)
}
