package domain

// ChannelSummary aggregates per-status counts for one processed channel.
// Accumulation is commutative, so unordered download completions fold in
// without any sequencing requirement.
type ChannelSummary struct {
	Channel         string `json:"channel"`
	Listed          int    `json:"listed"`
	Succeeded       int    `json:"succeeded"`
	SkippedAspect   int    `json:"skipped_aspect"`
	SkippedExisting int    `json:"skipped_existing"`
	Failed          int    `json:"failed"`
	ChannelFailed   bool   `json:"channel_failed"`
	FailureReason   string `json:"failure_reason,omitempty"`
}

// Count folds one terminal record status into the summary
func (s *ChannelSummary) Count(status RecordStatus) {
	switch status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusSkippedAspect:
		s.SkippedAspect++
	case StatusSkippedExisting:
		s.SkippedExisting++
	case StatusFailed:
		s.Failed++
	}
}

// Total returns the number of videos that reached a terminal status
func (s *ChannelSummary) Total() int {
	return s.Succeeded + s.SkippedAspect + s.SkippedExisting + s.Failed
}

// RunSummary aggregates channel summaries for a whole run
type RunSummary struct {
	Channels        int    `json:"channels"`
	ChannelsFailed  int    `json:"channels_failed"`
	Listed          int    `json:"listed"`
	Succeeded       int    `json:"succeeded"`
	SkippedAspect   int    `json:"skipped_aspect"`
	SkippedExisting int    `json:"skipped_existing"`
	Failed          int    `json:"failed"`
	RunID           string `json:"run_id,omitempty"`
}

// Merge folds one channel summary into the run summary
func (r *RunSummary) Merge(s ChannelSummary) {
	r.Channels++
	if s.ChannelFailed {
		r.ChannelsFailed++
	}
	r.Listed += s.Listed
	r.Succeeded += s.Succeeded
	r.SkippedAspect += s.SkippedAspect
	r.SkippedExisting += s.SkippedExisting
	r.Failed += s.Failed
}

// AllChannelsFailed reports total failure: not a single channel produced a
// listing. This is the only condition that warrants a non-zero exit.
func (r *RunSummary) AllChannelsFailed() bool {
	return r.Channels > 0 && r.ChannelsFailed == r.Channels
}
