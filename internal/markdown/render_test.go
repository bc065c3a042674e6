package markdown

import (
	"strings"
	"testing"

	"github.com/slackpipe/slackpipe/internal/history"
)

func alice() *history.User { return &history.User{ID: "U1", Name: "Alice"} }

func TestRender_ChannelHeading(t *testing.T) {
	data := &history.ChannelExportData{
		Channel: history.Channel{ID: "C1", Name: "general"},
	}

	got := Render(data)
	if got != "# general\n\n" {
		t.Errorf("Render() = %q, want just the channel heading", got)
	}
}

func TestRender_MessageBlock(t *testing.T) {
	data := &history.ChannelExportData{
		Channel: history.Channel{ID: "C1", Name: "general"},
		TopLevelMessages: []*history.Message{{
			User:      alice(),
			TS:        "100",
			TSDisplay: "1970-01-01 00:01:40 GMT",
			Text:      "hello world",
		}},
	}

	got := Render(data)
	want := "# general\n\n## Alice (1970-01-01 00:01:40 GMT)\nhello world\n\n\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_AttachmentsFilesReactions(t *testing.T) {
	data := &history.ChannelExportData{
		Channel: history.Channel{ID: "C1", Name: "general"},
		TopLevelMessages: []*history.Message{{
			User:      alice(),
			TSDisplay: "1970-01-01 00:01:40 GMT",
			Text:      "body",
			Attachments: []history.Attachment{
				{Title: "Deploy finished", Fallback: "deploy ok"},
			},
			Files: []history.File{
				{Title: "Notes", Name: "notes.txt", URL: "https://files.test/F1"},
				{Name: "untitled.png", URL: "https://files.test/F2"},
			},
			Reactions: []history.Reaction{
				{Name: "thumbsup", Count: 2},
				{Name: "tada", Count: 1},
			},
		}},
	}

	got := Render(data)

	// Fixed line templates: downstream consumers rely on this exact layout.
	for _, line := range []string{
		"* **Deploy finished** (fallback: deploy ok)\n",
		"* [Notes](https://files.test/F1)\n",
		"* [untitled.png](https://files.test/F2)\n", // name substitutes for a missing title
		"Reactions: thumbsup (2), tada (1)\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q\ngot:\n%s", line, got)
		}
	}
}

func TestRender_SystemMessageAuthor(t *testing.T) {
	data := &history.ChannelExportData{
		Channel: history.Channel{ID: "C1", Name: "general"},
		TopLevelMessages: []*history.Message{{
			TSDisplay: "1970-01-01 00:01:40 GMT",
			Text:      "channel archived",
		}},
	}

	if got := Render(data); !strings.Contains(got, "## Unknown User (1970-01-01 00:01:40 GMT)\n") {
		t.Errorf("system message heading missing, got:\n%s", got)
	}
}

func TestRender_NestedReplyHeadingLevels(t *testing.T) {
	deep := &history.Message{User: alice(), TSDisplay: "t3", Text: "level five"}
	mid := &history.Message{User: alice(), TSDisplay: "t2", Text: "level four", Replies: []*history.Message{deep}}
	reply := &history.Message{User: alice(), TSDisplay: "t1", Text: "level three", Replies: []*history.Message{mid}}
	data := &history.ChannelExportData{
		Channel: history.Channel{ID: "C1", Name: "general"},
		TopLevelMessages: []*history.Message{{
			User:      alice(),
			TSDisplay: "t0",
			Text:      "top",
			Replies:   []*history.Message{reply},
		}},
	}

	got := Render(data)

	// Heading depth grows one level per nesting level, uncapped.
	for _, heading := range []string{
		"## Alice (t0)\n",
		"### Alice (t1)\n",
		"#### Alice (t2)\n",
		"##### Alice (t3)\n",
	} {
		if !strings.Contains(got, heading) {
			t.Errorf("output missing heading %q\ngot:\n%s", heading, got)
		}
	}
}
