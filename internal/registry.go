package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ChannelLookup resolves a creator handle to a channel ID.
type ChannelLookup interface {
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)
}

// Registry is the persistent handle -> channel ID cache. A nil value records
// a handle that could not be resolved: it is written back as JSON null so the
// miss is visible in the cache file, and retried on the next run rather than
// treated as a permanent miss.
type Registry struct {
	path    string
	api     ChannelLookup
	verbose bool
}

// NewRegistry creates a channel registry backed by a JSON cache file.
func NewRegistry(path string, api ChannelLookup, verbose bool) *Registry {
	return &Registry{path: path, api: api, verbose: verbose}
}

// Load reads the cache file, creating an empty cache when the file is missing.
func (r *Registry) Load() (map[string]*string, error) {
	if !FileExists(r.path) {
		return map[string]*string{}, nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading channel cache: %w", err)
	}

	cache := map[string]*string{}
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing channel cache %s: %w", r.path, err)
	}
	return cache, nil
}

// Save writes the cache back as pretty-printed JSON.
func (r *Registry) Save(cache map[string]*string) error {
	if err := EnsureDirs(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling channel cache: %w", err)
	}
	if err := os.WriteFile(r.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing channel cache: %w", err)
	}
	return nil
}

// Resolve reconciles the cache against the watch-list and returns the
// handle -> channel ID mapping for this run.
//
// Handles no longer watched are dropped from the cache, not just ignored.
// Each unknown handle costs exactly one lookup; cached handles cost zero.
// A failed lookup is recorded as nil and does not abort the other handles.
func (r *Registry) Resolve(ctx context.Context, watchList []string) (map[string]*string, error) {
	cache, err := r.Load()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(watchList))
	for _, handle := range watchList {
		watched[handle] = true
	}
	for handle := range cache {
		if !watched[handle] {
			if r.verbose {
				fmt.Printf("Dropping unwatched channel %s from cache\n", handle)
			}
			delete(cache, handle)
		}
	}

	for _, handle := range watchList {
		if channelID, ok := cache[handle]; ok && channelID != nil {
			continue
		}
		channelID, err := r.api.ChannelIDByHandle(ctx, handle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: resolving %s: %v\n", handle, err)
			cache[handle] = nil
			continue
		}
		if r.verbose {
			fmt.Printf("Resolved channel ID for %s: %s\n", handle, channelID)
		}
		cache[handle] = &channelID
	}

	if err := r.Save(cache); err != nil {
		return nil, err
	}
	return cache, nil
}
