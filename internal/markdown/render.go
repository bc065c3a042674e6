// Package markdown serializes an exported channel tree into a single
// Markdown document with hierarchical thread headings.
package markdown

import (
	"fmt"
	"strings"

	"github.com/slackpipe/slackpipe/internal/history"
)

// Render converts a channel export into a Markdown document. Pure function:
// the whole document is materialized in memory, no I/O.
func Render(data *history.ChannelExportData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", data.Channel.Name)
	for _, msg := range data.TopLevelMessages {
		renderMessage(&b, msg, 2)
	}
	return b.String()
}

// renderMessage emits one message at the given heading level, then its
// replies one level deeper. Levels are not capped: deep nesting produces
// correspondingly deep headings.
func renderMessage(b *strings.Builder, msg *history.Message, level int) {
	fmt.Fprintf(b, "%s %s (%s)\n", strings.Repeat("#", level), authorName(msg), msg.TSDisplay)
	fmt.Fprintf(b, "%s\n\n", msg.Text)

	// Legacy attachments only; attachment content arriving in blocks does
	// not show up here.
	for _, a := range msg.Attachments {
		fmt.Fprintf(b, "* **%s** (fallback: %s)\n", a.Title, a.Fallback)
	}
	for _, f := range msg.Files {
		title := f.Title
		if title == "" {
			title = f.Name
		}
		fmt.Fprintf(b, "* [%s](%s)\n", title, f.URL)
	}
	if len(msg.Reactions) > 0 {
		parts := make([]string, 0, len(msg.Reactions))
		for _, r := range msg.Reactions {
			parts = append(parts, fmt.Sprintf("%s (%d)", r.Name, r.Count))
		}
		fmt.Fprintf(b, "Reactions: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\n")

	for _, reply := range msg.Replies {
		renderMessage(b, reply, level+1)
	}
}

func authorName(msg *history.Message) string {
	if msg.User == nil {
		return "Unknown User"
	}
	return msg.User.Name
}
