// Package export drives the Slack source through pagination, reconciles
// top-level messages with their thread replies, and assembles the
// intermediate channel tree handed to renderers.
package export

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/slackpipe/slackpipe/internal/history"
	"github.com/slackpipe/slackpipe/internal/mrkdwn"
	"github.com/slackpipe/slackpipe/internal/slack"
)

const (
	// DefaultMaxMessages caps the top-level messages fetched per channel.
	DefaultMaxMessages = 10000

	// DefaultMaxThreadMessages caps the messages fetched per thread. Larger
	// than the top-level cap: one popular thread can dominate a channel.
	DefaultMaxThreadMessages = 25000
)

// Source supplies paginated raw messages from the remote service, one page
// per call. Cursor handling below the page boundary (retries, rate limits)
// is the source's concern.
type Source interface {
	History(ctx context.Context, p slack.HistoryParams) (*slack.MessagePage, error)
	Replies(ctx context.Context, p slack.RepliesParams) (*slack.MessagePage, error)
}

// NameDirectory resolves ids to display names. Lookups are warmed maps; a
// false return means unresolved and callers substitute a deterministic
// fallback name.
type NameDirectory interface {
	UserName(id string) (string, bool)
	ChannelName(id string) (string, bool)
	BotName(ctx context.Context, id string) (string, bool)
	RecordBotName(id, name string)
}

// Options bound one export run. Zero values mean unbounded time in that
// direction and default caps.
type Options struct {
	Oldest            time.Time
	Latest            time.Time
	MaxMessages       int
	MaxThreadMessages int
	PageLimit         int
}

// Exporter assembles a ChannelExportData tree from a Slack source. One
// export run is single-threaded: pages and threads are fetched in a
// strictly ordered sequence and the tree is owned exclusively until
// returned.
type Exporter struct {
	src   Source
	names NameDirectory
	conv  *mrkdwn.Converter
	log   *slog.Logger
}

// NewExporter creates an Exporter over the given collaborators.
func NewExporter(src Source, names NameDirectory, conv *mrkdwn.Converter, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{src: src, names: names, conv: conv, log: log}
}

// Export fetches channel history in the (oldest, latest] window, merges
// thread replies under their parents, and returns the assembled tree.
// Any page fetch failure aborts with a SourceUnavailableError; malformed
// individual messages are skipped with a logged warning.
func (e *Exporter) Export(ctx context.Context, channelID string, opts Options) (*history.ChannelExportData, error) {
	if opts.MaxMessages <= 0 {
		opts.MaxMessages = DefaultMaxMessages
	}
	if opts.MaxThreadMessages <= 0 {
		opts.MaxThreadMessages = DefaultMaxThreadMessages
	}
	oldest := tsBound(opts.Oldest)
	latest := tsBound(opts.Latest)

	raw, err := e.fetchHistory(ctx, channelID, oldest, latest, opts)
	if err != nil {
		return nil, err
	}

	top := make([]*history.Message, 0, len(raw))
	index := make(map[string]*history.Message, len(raw))
	for _, m := range raw {
		msg, err := e.formatMessage(ctx, m)
		if err != nil {
			e.log.Warn("skipping malformed message", "channel", channelID, "error", err)
			continue
		}
		top = append(top, msg)
		index[msg.TS] = msg
	}

	threads, err := e.fetchThreads(ctx, channelID, top, oldest, latest, opts)
	if err != nil {
		return nil, err
	}
	e.mergeThreads(ctx, channelID, index, threads)

	name, ok := e.names.ChannelName(channelID)
	if !ok {
		name = "channel_" + channelID
	}
	return &history.ChannelExportData{
		Channel:          history.Channel{ID: channelID, Name: name},
		TopLevelMessages: top,
	}, nil
}

// fetchHistory concatenates history pages in source order until the row cap
// is met or no further cursor is returned, then trims to the cap.
func (e *Exporter) fetchHistory(ctx context.Context, channelID, oldest, latest string, opts Options) ([]slack.Message, error) {
	var rows []slack.Message
	cursor := ""
	for {
		page, err := e.src.History(ctx, slack.HistoryParams{
			Channel: channelID,
			Oldest:  oldest,
			Latest:  latest,
			Cursor:  cursor,
			Limit:   opts.PageLimit,
		})
		if err != nil {
			return nil, &SourceUnavailableError{Op: "conversations.history " + channelID, Err: err}
		}
		rows = append(rows, page.Messages...)
		cursor = page.NextCursor
		if len(rows) >= opts.MaxMessages || cursor == "" {
			break
		}
	}
	if len(rows) > opts.MaxMessages {
		rows = rows[:opts.MaxMessages]
	}
	e.log.Info("fetched channel history", "channel", channelID, "messages", len(rows))
	return rows, nil
}

// fetchThreads fetches reply pages for every thread parent among the
// top-level messages, keyed by the thread timestamp.
func (e *Exporter) fetchThreads(ctx context.Context, channelID string, top []*history.Message, oldest, latest string, opts Options) (map[string][]slack.Message, error) {
	threads := make(map[string][]slack.Message)
	for _, m := range top {
		if !m.IsThreadParent() {
			continue
		}
		var rows []slack.Message
		cursor := ""
		for {
			page, err := e.src.Replies(ctx, slack.RepliesParams{
				Channel:  channelID,
				ThreadTS: m.ThreadTS,
				Oldest:   oldest,
				Latest:   latest,
				Cursor:   cursor,
				Limit:    opts.PageLimit,
			})
			if err != nil {
				return nil, &SourceUnavailableError{Op: "conversations.replies " + m.ThreadTS, Err: err}
			}
			rows = append(rows, page.Messages...)
			cursor = page.NextCursor
			if len(rows) >= opts.MaxThreadMessages || cursor == "" {
				break
			}
		}
		if len(rows) > opts.MaxThreadMessages {
			rows = rows[:opts.MaxThreadMessages]
		}
		threads[m.ThreadTS] = rows
	}
	return threads, nil
}

// mergeThreads appends each thread's replies to its parent in source order.
// The entry matching the thread's own timestamp is the parent itself and is
// not duplicated as its own child. Threads whose parent is missing from the
// top-level set contribute nothing: replies are never orphaned into the top
// level.
func (e *Exporter) mergeThreads(ctx context.Context, channelID string, index map[string]*history.Message, threads map[string][]slack.Message) {
	for threadTS, rows := range threads {
		parent, ok := index[threadTS]
		if !ok {
			continue
		}
		for _, m := range rows {
			if m.TS == threadTS {
				continue
			}
			reply, err := e.formatMessage(ctx, m)
			if err != nil {
				e.log.Warn("skipping malformed thread reply",
					"channel", channelID, "thread", threadTS, "error", err)
				continue
			}
			parent.Replies = append(parent.Replies, reply)
		}
	}
}

// formatMessage maps one raw message into the intermediate model, running
// its text and flagged attachment text through the markup converter.
func (e *Exporter) formatMessage(ctx context.Context, m slack.Message) (*history.Message, error) {
	if m.TS == "" {
		return nil, &MalformedRecordError{Reason: "missing ts"}
	}
	tsDisplay, err := displayTS(m.TS)
	if err != nil {
		return nil, &MalformedRecordError{TS: m.TS, Reason: "unparsable ts"}
	}

	msg := &history.Message{
		User:      e.resolveAuthor(ctx, m),
		TS:        m.TS,
		ThreadTS:  m.ThreadTS,
		TSDisplay: tsDisplay,
		Text:      e.conv.Convert(m.Text, true),
		IsBot:     m.BotID != "",
	}
	if m.ThreadTS != "" {
		if d, err := displayTS(m.ThreadTS); err == nil {
			msg.ThreadTSDisplay = d
		}
	}

	for _, r := range m.Reactions {
		msg.Reactions = append(msg.Reactions, history.Reaction{
			Name:    r.Name,
			Count:   r.Count,
			UserIDs: r.Users,
		})
	}
	for _, f := range m.Files {
		msg.Files = append(msg.Files, history.File{
			ID:        f.ID,
			URL:       f.URLPrivate,
			Name:      f.Name,
			Filetype:  f.Filetype,
			Title:     f.Title,
			Mimetype:  f.Mimetype,
			Size:      f.Size,
			Timestamp: f.Timestamp.String(),
		})
	}
	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, history.Attachment{
			Fallback:   a.Fallback,
			Text:       e.conv.Convert(a.Text, mrkdwnIn(a.MrkdwnIn, "text")),
			Pretext:    e.conv.Convert(a.Pretext, mrkdwnIn(a.MrkdwnIn, "pretext")),
			Title:      a.Title,
			TitleLink:  a.TitleLink,
			AuthorName: a.AuthorName,
			Footer:     a.Footer,
			ImageURL:   a.ImageURL,
			Color:      a.Color,
		})
	}
	for _, b := range m.Blocks {
		msg.Blocks = append(msg.Blocks, formatBlock(b))
	}
	return msg, nil
}

// resolveAuthor maps the message author to a User: the user id when
// present, else the bot id, else absent for system messages. Unresolved
// ids degrade to deterministic placeholder names.
func (e *Exporter) resolveAuthor(ctx context.Context, m slack.Message) *history.User {
	if m.User != "" {
		name, ok := e.names.UserName(m.User)
		if !ok {
			name = "unknown_user_" + m.User
		}
		return &history.User{ID: m.User, Name: name}
	}
	if m.BotID != "" {
		if m.Username != "" {
			e.names.RecordBotName(m.BotID, m.Username)
			return &history.User{ID: m.BotID, Name: m.Username}
		}
		name, ok := e.names.BotName(ctx, m.BotID)
		if !ok {
			name = "bot_" + m.BotID
		}
		return &history.User{ID: m.BotID, Name: name}
	}
	return nil
}

func formatBlock(b slack.Block) history.Block {
	block := history.Block{
		Type:     b.Type,
		Text:     formatComposition(b.Text),
		ImageURL: b.ImageURL,
		AltText:  b.AltText,
	}
	for _, f := range b.Fields {
		block.Fields = append(block.Fields, *formatComposition(&f))
	}
	if b.Accessory != nil {
		el := formatElement(*b.Accessory)
		block.Accessory = &el
	}
	for _, el := range b.Elements {
		block.Elements = append(block.Elements, formatElement(el))
	}
	return block
}

func formatElement(el slack.Element) history.Element {
	out := history.Element{
		Type:      el.Type,
		Text:      formatComposition(el.Text),
		RawText:   el.RawText,
		Name:      el.Name,
		URL:       el.URL,
		UserID:    el.UserID,
		ChannelID: el.ChannelID,
		GroupID:   el.UsergroupID,
		Range:     el.Range,
		Value:     el.Value,
		ActionID:  el.ActionID,
	}
	for _, child := range el.Elements {
		out.Elements = append(out.Elements, formatElement(child))
	}
	return out
}

func formatComposition(t *slack.TextObject) *history.Composition {
	if t == nil {
		return nil
	}
	return &history.Composition{Type: t.Type, Text: t.Text, Emoji: t.Emoji}
}

// displayTS renders a raw epoch-seconds timestamp as a fixed-format UTC
// string. Display never depends on the configured output locale or
// timezone; only command-line time bounds do.
func displayTS(ts string) (string, error) {
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return "", err
	}
	return time.Unix(int64(seconds), 0).UTC().Format("2006-01-02 15:04:05") + " GMT", nil
}

// tsBound converts a time bound to a raw Slack timestamp; the zero time
// means unbounded.
func tsBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10) + ".000000"
}

func mrkdwnIn(fields []string, field string) bool {
	for _, f := range fields {
		if strings.EqualFold(f, field) {
			return true
		}
	}
	return false
}
