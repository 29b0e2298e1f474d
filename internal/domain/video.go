package domain

// VideoDescriptor is one entry of a shallow channel listing: enough to
// identify and classify a video without fetching its full detail. Produced by
// a VideoLister, read-only for everyone downstream.
type VideoDescriptor struct {
	ID    string
	Title string
	URL   string

	// Dimensions as reported by the flat listing. Zero means unknown; the
	// aspect filter keeps videos it cannot classify.
	Width       int
	Height      int
	AspectRatio float64

	// Raw holds the remaining listing fields untouched.
	Raw map[string]interface{}
}

// WatchURL returns the direct watch URL for the video, falling back to
// constructing one from the ID when the listing did not carry a URL.
func (v VideoDescriptor) WatchURL() string {
	if v.URL != "" {
		return v.URL
	}
	return "https://www.youtube.com/watch?v=" + v.ID
}
