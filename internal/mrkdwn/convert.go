// Package mrkdwn rewrites Slack's proprietary inline markup dialect into
// standard Markdown, resolving user, channel, and usergroup references to
// human-readable names through a warmed lookup table.
package mrkdwn

import (
	"fmt"
	"regexp"
	"strings"
)

// NameSource resolves opaque Slack ids to display names. Lookups are
// in-memory maps warmed before conversion starts; a false second return
// means the id is unknown and a deterministic fallback name is used.
type NameSource interface {
	UserName(id string) (string, bool)
	ChannelName(id string) (string, bool)
	UsergroupName(id string) (string, bool)
}

// Passes are applied in a fixed order so later regexes never re-match text
// produced by earlier ones.
var (
	bracketRe    = regexp.MustCompile(`<(.*?)>`)
	boldRe       = regexp.MustCompile(`\*(.+?)\*`)
	italicRe     = regexp.MustCompile(`\b_(.+?)_\b`)
	blockquoteRe = regexp.MustCompile(`(?m)^> ?`)
)

// Converter rewrites mrkdwn text into standard Markdown. It never fails:
// malformed tokens degrade to a best-effort literal and unresolved ids to
// placeholder names, because an export with a few unresolved names beats no
// export at all.
type Converter struct {
	names NameSource
}

// NewConverter creates a Converter backed by the given name source.
func NewConverter(names NameSource) *Converter {
	return &Converter{names: names}
}

// Convert rewrites text into standard Markdown. If isMarkup is false the
// text is plain by the source's own flag and is returned unchanged.
func (c *Converter) Convert(text string, isMarkup bool) string {
	if !isMarkup {
		return text
	}

	// Bracketed tokens: mentions, special tokens, links.
	result := bracketRe.ReplaceAllStringFunc(text, c.replaceToken)

	// Single-asterisk bold becomes double-asterisk.
	result = boldRe.ReplaceAllString(result, "**$1**")

	// Italic syntax coincides between the dialects; the pass re-validates
	// word-boundary placement.
	result = italicRe.ReplaceAllString(result, "_${1}_")

	// Inline code is identical in both dialects and left alone.

	// Block quote lines get a single normalized space after the marker.
	result = blockquoteRe.ReplaceAllString(result, "> ")

	return result
}

// replaceToken dispatches one bracketed token on its prefix.
func (c *Converter) replaceToken(match string) string {
	token := strings.TrimSuffix(strings.TrimPrefix(match, "<"), ">")

	switch {
	case strings.HasPrefix(token, "@U") || strings.HasPrefix(token, "@W"):
		return c.userMention(token[1:])
	case strings.HasPrefix(token, "#C"):
		return c.channelMention(token[1:])
	case strings.HasPrefix(token, "!subteam^"):
		return c.usergroupMention(token)
	case strings.HasPrefix(token, "!"):
		return specialMention(token)
	default:
		return linkToken(token)
	}
}

func (c *Converter) userMention(id string) string {
	name, ok := c.names.UserName(id)
	if !ok {
		name = "user_" + id
	}
	return "@" + name
}

func (c *Converter) channelMention(id string) string {
	name, ok := c.names.ChannelName(id)
	if !ok {
		name = "channel_" + id
	}
	return "#" + name
}

func (c *Converter) usergroupMention(token string) string {
	id := strings.Split(token, "^")[1]
	name, ok := c.names.UsergroupName(id)
	if !ok {
		name = "usergroup_" + id
	}
	return "@" + name
}

// specialMention handles the !-prefixed tokens that are not usergroups.
// !date tokens pass their raw id through: the source service left its
// locale-aware date formatter disconnected, and that behavior is kept.
func specialMention(token string) string {
	switch {
	case token == "!here":
		return "@here"
	case token == "!channel":
		return "@channel"
	case token == "!everyone":
		return "@everyone"
	case strings.HasPrefix(token, "!date^"):
		return strings.Split(token, "^")[1]
	default:
		return "@" + token
	}
}

// linkToken renders a url or url|display pair as a Markdown link. Anything
// not recognized by the other branches lands here and comes out verbatim as
// [text](text) rather than failing.
func linkToken(token string) string {
	url, text, found := strings.Cut(token, "|")
	url = strings.TrimSpace(url)
	if found {
		text = strings.TrimSpace(text)
	} else {
		text = url
	}
	return fmt.Sprintf("[%s](%s)", text, url)
}
