package internal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// maxPageSize is the largest page the playlistItems endpoint allows.
// Fetching full pages keeps quota usage at one unit per 50 uploads.
const maxPageSize = 50

// UploadItem is one entry of a channel's uploads listing.
type UploadItem struct {
	VideoID      string
	Title        string
	PublishedAt  string // RFC3339, UTC
	ChannelID    string
	ChannelTitle string
}

// UploadsPage is a single page of a channel's uploads listing.
type UploadsPage struct {
	Items         []UploadItem
	NextPageToken string
}

// UploadsLister is the slice of the YouTube Data API the pipeline consumes.
type UploadsLister interface {
	// ChannelIDByHandle resolves a creator handle to its channel ID.
	// Returns ErrChannelNotFound when the handle does not exist.
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)

	// UploadsPlaylistID returns the channel's implicit uploads playlist.
	UploadsPlaylistID(ctx context.Context, channelID string) (string, error)

	// UploadsPage fetches one page of the uploads playlist, newest first.
	// An empty pageToken requests the first page.
	UploadsPage(ctx context.Context, playlistID, pageToken string) (*UploadsPage, error)
}

// DataAPI implements UploadsLister against the YouTube Data API v3.
type DataAPI struct {
	svc     *youtube.Service
	timeout time.Duration
}

// NewDataAPI creates a Data API client authenticated with an API key.
func NewDataAPI(ctx context.Context, apiKey string, timeout time.Duration) (*DataAPI, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating YouTube service: %w", err)
	}
	return &DataAPI{svc: svc, timeout: timeout}, nil
}

func (api *DataAPI) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if api.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, api.timeout)
}

// ChannelIDByHandle resolves a handle via channels.list(forHandle).
func (api *DataAPI) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	ctx, cancel := api.callContext(ctx)
	defer cancel()

	resp, err := api.svc.Channels.List([]string{"id"}).
		ForHandle(NormalizeHandle(handle)).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("looking up handle %s: %w", handle, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: %s", ErrChannelNotFound, handle)
	}
	return resp.Items[0].Id, nil
}

// UploadsPlaylistID fetches the channel's uploads playlist from contentDetails.
func (api *DataAPI) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	ctx, cancel := api.callContext(ctx)
	defer cancel()

	resp, err := api.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetching content details for %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil ||
		resp.Items[0].ContentDetails.RelatedPlaylists == nil {
		return "", fmt.Errorf("%w: channel %s", ErrNoUploads, channelID)
	}
	uploads := resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return "", fmt.Errorf("%w: channel %s", ErrNoUploads, channelID)
	}
	return uploads, nil
}

// UploadsPage fetches one page of playlistItems with snippet data.
func (api *DataAPI) UploadsPage(ctx context.Context, playlistID, pageToken string) (*UploadsPage, error) {
	ctx, cancel := api.callContext(ctx)
	defer cancel()

	call := api.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(maxPageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing uploads page: %w", err)
	}

	page := &UploadsPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		page.Items = append(page.Items, UploadItem{
			VideoID:      item.Snippet.ResourceId.VideoId,
			Title:        item.Snippet.Title,
			PublishedAt:  item.Snippet.PublishedAt,
			ChannelID:    item.Snippet.VideoOwnerChannelId,
			ChannelTitle: item.Snippet.VideoOwnerChannelTitle,
		})
	}
	return page, nil
}

// Discovery walks channel upload listings for videos on a target date.
type Discovery struct {
	api     UploadsLister
	verbose bool
}

// NewDiscovery creates a video discovery walker.
func NewDiscovery(api UploadsLister, verbose bool) *Discovery {
	return &Discovery{api: api, verbose: verbose}
}

// ListByDate returns the channel's videos published on targetDate (UTC).
//
// The uploads listing arrives newest first, so the scan stops at the first
// item older than the target date. That bounds the pages fetched by the
// number of uploads on or after targetDate, not by channel history.
func (d *Discovery) ListByDate(ctx context.Context, channelID, targetDate string) ([]VideoRecord, error) {
	playlistID, err := d.api.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var videos []VideoRecord
	pageToken := ""

	for {
		page, err := d.api.UploadsPage(ctx, playlistID, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			published := PublishedDate(item.PublishedAt)
			switch {
			case published == targetDate:
				videos = append(videos, VideoRecord{
					VideoID:      item.VideoID,
					Title:        item.Title,
					Published:    published,
					ChannelID:    item.ChannelID,
					ChannelTitle: item.ChannelTitle,
				})
			case published < targetDate:
				return videos, nil
			default:
				// Newer than the target date (scheduled premieres and the
				// like); keep scanning toward it.
				if d.verbose {
					fmt.Printf("Skipping %s published %s (after %s)\n", item.VideoID, published, targetDate)
				}
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return videos, nil
		}
	}
}
