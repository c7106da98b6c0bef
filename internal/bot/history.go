package bot

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"wordle-tracker/internal/wordle"
)

// Discord snowflake IDs embed a millisecond timestamp relative to the
// Discord epoch; a synthetic ID for a point in time lets the history API
// page by timestamp.
const discordEpochMillis = 1420070400000

func snowflakeAt(t time.Time) string {
	millis := t.UnixMilli() - discordEpochMillis
	if millis < 0 {
		millis = 0
	}
	return strconv.FormatInt(millis<<22, 10)
}

// channelHistory adapts the Discord message-history API to the scanner's
// time-interval view.
type channelHistory struct {
	session *discordgo.Session
}

func (h *channelHistory) GuildChannels(guildID string) ([]wordle.Channel, error) {
	channels, err := h.session.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}
	var out []wordle.Channel
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		out = append(out, wordle.Channel{ID: channel.ID, Name: channel.Name})
	}
	return out, nil
}

// Messages walks backward from before until after or until limit messages
// have been collected, paginating on message IDs.
func (h *channelHistory) Messages(channelID string, after, before time.Time, limit int) ([]wordle.Message, error) {
	out := make([]wordle.Message, 0, limit)
	beforeID := snowflakeAt(before)
	for len(out) < limit {
		pageSize := limit - len(out)
		if pageSize > 100 {
			pageSize = 100
		}
		page, err := h.session.ChannelMessages(channelID, pageSize, beforeID, "", "")
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		reachedStart := false
		for _, msg := range page {
			if msg.Timestamp.Before(after) {
				reachedStart = true
				break
			}
			authorID := ""
			if msg.Author != nil {
				authorID = msg.Author.ID
			}
			out = append(out, wordle.Message{
				ID:        msg.ID,
				ChannelID: channelID,
				AuthorID:  authorID,
				Content:   msg.Content,
				Timestamp: msg.Timestamp,
			})
		}
		if reachedStart {
			break
		}
		beforeID = page[len(page)-1].ID
	}
	return out, nil
}
