package slack

import (
	"context"
	"fmt"
	"log/slog"
)

// BotFetcher fetches bot info by id. Implemented by *Client; mocked in tests.
type BotFetcher interface {
	BotInfo(ctx context.Context, botID string) (*Bot, error)
}

// Directory resolves ids to display names. User, channel, and usergroup
// names are warmed once into in-memory maps before any conversion starts
// and are read-only afterwards. Bot names resolve lazily through the
// persistent cache and then bots.info, because that endpoint is slow and
// most bots appear in messages with a username anyway.
type Directory struct {
	users      map[string]string
	channels   map[string]string
	usergroups map[string]string

	botCache *BotCache
	fetcher  BotFetcher
}

// NewDirectory builds a Directory from already-fetched listings. Users
// resolve to their real name when set, else their handle. Usergroups
// resolve to their @-mentionable handle.
func NewDirectory(users []User, channels []Channel, groups []UserGroup, cache *BotCache, fetcher BotFetcher) *Directory {
	d := &Directory{
		users:      make(map[string]string, len(users)),
		channels:   make(map[string]string, len(channels)),
		usergroups: make(map[string]string, len(groups)),
		botCache:   cache,
		fetcher:    fetcher,
	}
	if d.botCache == nil {
		d.botCache = NewBotCache("")
	}
	for _, u := range users {
		switch {
		case u.RealName != "":
			d.users[u.ID] = u.RealName
		case u.Name != "":
			d.users[u.ID] = u.Name
		}
	}
	for _, ch := range channels {
		if ch.Name != "" {
			d.channels[ch.ID] = ch.Name
		}
	}
	for _, g := range groups {
		if g.Handle != "" {
			d.usergroups[g.ID] = g.Handle
		}
	}
	return d
}

// Warm verifies credentials and fetches the user, channel, and usergroup
// listings in one strictly ordered pass. The returned AuthInfo identifies
// the workspace the export runs against.
func Warm(ctx context.Context, client *Client, cache *BotCache, log *slog.Logger) (*Directory, *AuthInfo, error) {
	if log == nil {
		log = slog.Default()
	}

	info, err := client.AuthTest(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("verifying workspace access: %w", err)
	}
	log.Info("connected to workspace", "team", info.Team, "user", info.User)

	users, err := client.Users(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching users: %w", err)
	}
	channels, err := client.Channels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching channels: %w", err)
	}
	groups, err := client.Usergroups(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching usergroups: %w", err)
	}
	log.Info("directory warmed",
		"users", len(users), "channels", len(channels), "usergroups", len(groups))

	return NewDirectory(users, channels, groups, cache, client), info, nil
}

// UserName resolves a user id to a display name.
func (d *Directory) UserName(id string) (string, bool) {
	name, ok := d.users[id]
	return name, ok
}

// ChannelName resolves a channel id to its name.
func (d *Directory) ChannelName(id string) (string, bool) {
	name, ok := d.channels[id]
	return name, ok
}

// UsergroupName resolves a usergroup id to its handle.
func (d *Directory) UsergroupName(id string) (string, bool) {
	name, ok := d.usergroups[id]
	return name, ok
}

// BotName resolves a bot id, consulting the cache before bots.info. A
// failed fetch returns false rather than an error: the caller falls back
// to a deterministic placeholder name.
func (d *Directory) BotName(ctx context.Context, id string) (string, bool) {
	if name, ok := d.botCache.Get(id); ok {
		return name, true
	}
	if d.fetcher == nil {
		return "", false
	}
	bot, err := d.fetcher.BotInfo(ctx, id)
	if err != nil || bot.Name == "" {
		return "", false
	}
	d.botCache.Set(id, bot.Name)
	return bot.Name, true
}

// RecordBotName caches a bot name observed directly on a message, so the
// slow bots.info lookup is only made for bots never seen with a username.
func (d *Directory) RecordBotName(id, name string) {
	if id == "" || name == "" {
		return
	}
	d.botCache.Set(id, name)
}

// SaveBotCache persists lazily resolved bot names for the next run.
func (d *Directory) SaveBotCache() error {
	return d.botCache.Save()
}
