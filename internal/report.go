package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// noSummaryNotice flags videos whose transcript could not be obtained.
// They still appear in the digest; only the summary is missing.
const noSummaryNotice = "(no summary available)"

// EmptyDigestNotice is the message for a date with no published videos.
func EmptyDigestNotice(date string) string {
	return fmt.Sprintf("There are no published videos on %s! (UTC+0)", date)
}

// BuildDigest renders the run's records as a markdown report, one block per
// video, in discovery order.
func BuildDigest(date string, videos []VideoRecord) string {
	if len(videos) == 0 {
		return EmptyDigestNotice(date)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Creator digest for %s\n\n", date))

	for i, video := range videos {
		sb.WriteString(fmt.Sprintf("## %s\n\n", video.Title))
		sb.WriteString(fmt.Sprintf("- 創作者: %s\n", video.ChannelTitle))
		sb.WriteString(fmt.Sprintf("- 發布日期: %s (UTC+0)\n", video.Published))
		sb.WriteString(fmt.Sprintf("- 連結: %s\n", video.URL()))

		summary := video.Summary
		if summary == "" {
			summary = noSummaryNotice
		}
		sb.WriteString(fmt.Sprintf("- 摘要: %s\n", summary))

		if i < len(videos)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// PrintDigest writes the digest to stdout, rendered with glamour when stdout
// is a terminal and passed through unchanged when piped.
func PrintDigest(digest string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Println(digest)
		return nil
	}

	rendered, err := RenderMarkdown(digest)
	if err != nil {
		// Fall back to the raw markdown rather than losing the report.
		fmt.Println(digest)
		return nil
	}
	fmt.Println(rendered)
	return nil
}
