package domain

import (
	"regexp"
	"strings"
)

// ChannelSpec is one configured archive target: a raw channel reference plus
// the directory its videos are written to. Immutable for the duration of a run.
type ChannelSpec struct {
	Reference string `mapstructure:"url" json:"url"`
	OutputDir string `mapstructure:"download_directory" json:"download_directory,omitempty"`
}

var (
	channelIDPattern = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	handlePattern    = regexp.MustCompile(`^@[A-Za-z0-9._-]{3,30}$`)
)

// ResolveChannelURL turns a raw channel reference into the canonical
// videos-listing URL. Recognized shapes, in order:
//
//   - a URL already ending in /videos: passed through unchanged
//   - a watch URL (youtube.com/watch or youtu.be): passed through, listing
//     it yields a single video
//   - a bare handle (@name): expanded to the handle's videos page
//   - a bare channel ID (UC + 22 chars): expanded to the channel's videos page
//   - any other http(s) URL: trailing slash stripped, /videos appended
//
// Anything else fails with InvalidReferenceError. Pure function, no I/O.
func ResolveChannelURL(reference string) (string, error) {
	ref := strings.TrimSpace(reference)

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if strings.Contains(ref, "/watch?") || strings.Contains(ref, "youtu.be/") {
			return ref, nil
		}
		ref = strings.TrimRight(ref, "/")
		if strings.HasSuffix(ref, "/videos") {
			return ref, nil
		}
		return ref + "/videos", nil
	}

	if channelIDPattern.MatchString(ref) {
		return "https://www.youtube.com/channel/" + ref + "/videos", nil
	}

	if handlePattern.MatchString(ref) {
		return "https://www.youtube.com/" + ref + "/videos", nil
	}

	return "", &InvalidReferenceError{Reference: reference}
}
