package domain

import "math"

// portraitRatio is width/height of 9:16 vertical video.
const portraitRatio = 9.0 / 16.0

// portraitTolerance absorbs rounding in reported dimensions (608x1080 etc).
const portraitTolerance = 0.05

// FilterDecision is the outcome of classifying a descriptor.
type FilterDecision int

const (
	Keep FilterDecision = iota
	SkipAspect
)

func (d FilterDecision) String() string {
	if d == SkipAspect {
		return "skip_aspect"
	}
	return "keep"
}

// ClassifyAspect decides whether a video is 9:16 portrait content and should
// be skipped. Both dimensions must be present and height strictly greater
// than width; when dimensions are missing, an explicit aspect_ratio field is
// consulted; when nothing is known the video is kept. Pure predicate.
func ClassifyAspect(v VideoDescriptor) FilterDecision {
	if v.Width > 0 && v.Height > 0 {
		if v.Height > v.Width && withinPortrait(float64(v.Width)/float64(v.Height)) {
			return SkipAspect
		}
		return Keep
	}
	if v.AspectRatio > 0 && withinPortrait(v.AspectRatio) {
		return SkipAspect
	}
	return Keep
}

func withinPortrait(ratio float64) bool {
	return math.Abs(ratio-portraitRatio) <= portraitTolerance
}
