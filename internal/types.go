package internal

import "errors"

// Sentinel errors for the discovery pipeline.
var (
	ErrChannelNotFound  = errors.New("youtube: channel not found for handle")
	ErrNoUploads        = errors.New("youtube: uploads playlist not found")
	ErrCaptionsDisabled = errors.New("captions: disabled for video")
	ErrNoCaptions       = errors.New("captions: no transcript found")
)

// VideoRecord is one discovered upload, annotated with whatever transcript
// could be obtained. Transcript is "" when every acquisition path failed;
// the record is still part of the run's output.
type VideoRecord struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Published    string `json:"published"` // YYYY-MM-DD, UTC
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	Transcript   string `json:"transcript"`
	Summary      string `json:"summary,omitempty"`
}

// URL returns the watch URL for the video.
func (v VideoRecord) URL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// CaptionStatus says why the caption path produced no text.
type CaptionStatus int

const (
	// CaptionsFound means a matching track was fetched.
	CaptionsFound CaptionStatus = iota
	// CaptionsDisabled means the video owner turned captions off.
	CaptionsDisabled
	// CaptionsNoMatch means tracks exist but none in a preferred language.
	CaptionsNoMatch
	// CaptionsFailed covers listing and fetch errors.
	CaptionsFailed
)

// String returns a human-readable reason for logging.
func (s CaptionStatus) String() string {
	switch s {
	case CaptionsFound:
		return "found"
	case CaptionsDisabled:
		return "disabled"
	case CaptionsNoMatch:
		return "no matching language"
	case CaptionsFailed:
		return "fetch failed"
	default:
		return "unknown"
	}
}

// CaptionResult carries either caption text or the reason it is unavailable.
// Callers branch on Text == ""; Status and Err exist for diagnostics only.
type CaptionResult struct {
	Text   string
	Status CaptionStatus
	Err    error
}

// Available reports whether the caption path produced text.
func (r CaptionResult) Available() bool {
	return r.Status == CaptionsFound && r.Text != ""
}
