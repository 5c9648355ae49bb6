package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
)

// segmentJoiner concatenates caption segments into one line of text.
// A full-width comma keeps CJK transcripts readable after joining.
const segmentJoiner = "，"

// CaptionTrack is one platform-hosted caption track, flattened to its text.
type CaptionTrack struct {
	LanguageCode string
	Segments     []string
}

// CaptionLister fetches the caption tracks available for a video.
// Implementations classify upstream failures into ErrCaptionsDisabled and
// ErrNoCaptions so the resolver can log a distinguishing reason.
type CaptionLister interface {
	ListTracks(ctx context.Context, videoID string, languages []string) ([]CaptionTrack, error)
}

// ytTranscriptClient adapts the youtube-transcript-api client to CaptionLister.
type ytTranscriptClient struct {
	client *yt_transcript.YtTranscriptClient
}

// NewCaptionLister creates a caption client backed by YouTube's caption tracks.
// No API key is needed; caption fetching rides the public player endpoints.
func NewCaptionLister() CaptionLister {
	return &ytTranscriptClient{client: yt_transcript.NewClient()}
}

func (c *ytTranscriptClient) ListTracks(ctx context.Context, videoID string, languages []string) ([]CaptionTrack, error) {
	transcripts, err := c.client.GetTranscripts(videoID, languages)
	if err != nil {
		return nil, classifyCaptionError(err)
	}

	tracks := make([]CaptionTrack, 0, len(transcripts))
	for _, t := range transcripts {
		segments := make([]string, 0, len(t.Lines))
		for _, line := range t.Lines {
			if text := strings.TrimSpace(line.Text); text != "" {
				segments = append(segments, text)
			}
		}
		tracks = append(tracks, CaptionTrack{
			LanguageCode: t.LanguageCode,
			Segments:     segments,
		})
	}
	return tracks, nil
}

// classifyCaptionError maps upstream failures onto the sentinel errors.
func classifyCaptionError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return fmt.Errorf("%w: %v", ErrCaptionsDisabled, err)
	case strings.Contains(msg, "no transcript"), strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %v", ErrNoCaptions, err)
	default:
		return err
	}
}

// TranscriptResolver obtains transcripts from caption tracks in a
// language-preference order.
type TranscriptResolver struct {
	captions  CaptionLister
	languages []string
	verbose   bool
}

// NewTranscriptResolver creates a resolver with the given preference order.
func NewTranscriptResolver(captions CaptionLister, languages []string, verbose bool) *TranscriptResolver {
	return &TranscriptResolver{captions: captions, languages: languages, verbose: verbose}
}

// Resolve returns the caption transcript for a video, or an empty result
// with a distinguishing reason. It never returns an error to the caller:
// every unavailability condition surfaces uniformly as empty text.
func (r *TranscriptResolver) Resolve(ctx context.Context, videoID string) CaptionResult {
	tracks, err := r.captions.ListTracks(ctx, videoID, r.languages)
	if err != nil {
		result := CaptionResult{Status: CaptionsFailed, Err: err}
		switch {
		case errors.Is(err, ErrCaptionsDisabled):
			result.Status = CaptionsDisabled
		case errors.Is(err, ErrNoCaptions):
			result.Status = CaptionsNoMatch
		}
		if r.verbose {
			fmt.Printf("No transcript for %s (%s): %v\n", videoID, result.Status, err)
		}
		return result
	}

	// First preferred language with a non-empty track wins.
	for _, lang := range r.languages {
		for _, track := range tracks {
			if track.LanguageCode != lang || len(track.Segments) == 0 {
				continue
			}
			if r.verbose {
				fmt.Printf("Using %s captions for %s (%d segments)\n", lang, videoID, len(track.Segments))
			}
			return CaptionResult{
				Text:   strings.Join(track.Segments, segmentJoiner),
				Status: CaptionsFound,
			}
		}
	}

	if r.verbose {
		fmt.Printf("No transcript for %s: %d tracks, none in %s\n",
			videoID, len(tracks), strings.Join(r.languages, ", "))
	}
	return CaptionResult{Status: CaptionsNoMatch}
}
