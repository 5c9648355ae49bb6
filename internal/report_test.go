package internal

import (
	"strings"
	"testing"
)

func TestBuildDigest_Empty(t *testing.T) {
	digest := BuildDigest("2024-05-02", nil)
	if digest != "There are no published videos on 2024-05-02! (UTC+0)" {
		t.Errorf("digest = %q", digest)
	}
}

func TestBuildDigest_Records(t *testing.T) {
	videos := []VideoRecord{
		{
			VideoID:      "vid00000001",
			Title:        "First video",
			Published:    "2024-05-02",
			ChannelTitle: "Creator One",
			Transcript:   "text",
			Summary:      "Summary one.",
		},
		{
			VideoID:      "vid00000002",
			Title:        "Second video",
			Published:    "2024-05-02",
			ChannelTitle: "Creator Two",
		},
	}

	digest := BuildDigest("2024-05-02", videos)

	for _, want := range []string{
		"# Creator digest for 2024-05-02",
		"## First video",
		"- 創作者: Creator One",
		"- 發布日期: 2024-05-02 (UTC+0)",
		"- 連結: https://www.youtube.com/watch?v=vid00000001",
		"- 摘要: Summary one.",
		"## Second video",
		"- 摘要: (no summary available)",
	} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}

	// Discovery order is preserved.
	if strings.Index(digest, "First video") > strings.Index(digest, "Second video") {
		t.Error("digest reordered the records")
	}
}
