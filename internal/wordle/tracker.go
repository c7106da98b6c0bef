package wordle

import (
	"time"

	"go.uber.org/zap"

	"wordle-tracker/internal/logging"
)

// Message is the platform-independent shape of an inbound chat message,
// produced by the live event handler and by the backfill scanner alike.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
	Timestamp time.Time
}

// Tracker runs the parse -> resolve -> commit pipeline for one message at
// a time.
type Tracker struct {
	resolver    *Resolver
	recorder    *Recorder
	announcerID string
}

func NewTracker(resolver *Resolver, recorder *Recorder, announcerID string) *Tracker {
	return &Tracker{resolver: resolver, recorder: recorder, announcerID: announcerID}
}

// HandleMessage processes one live message. Messages from other authors
// and non-announcement content are skipped silently.
func (t *Tracker) HandleMessage(guildID string, msg Message) error {
	if msg.AuthorID != t.announcerID {
		return nil
	}
	announcement := ParseAnnouncement(msg.Content)
	if announcement == nil {
		logging.L().Debug("announcer message did not match the results pattern",
			zap.String("guild", guildID), zap.String("message", msg.ID))
		return nil
	}
	saved, err := t.RecordAnnouncement(guildID, msg, announcement)
	if err != nil {
		return err
	}
	logging.L().Info("saved announcement results",
		zap.String("guild", guildID),
		zap.String("message", msg.ID),
		zap.Int("streak_days", announcement.StreakDays),
		zap.Int("results", saved))
	return nil
}

// RecordAnnouncement resolves and commits an already-parsed announcement.
func (t *Tracker) RecordAnnouncement(guildID string, msg Message, announcement *Announcement) (int, error) {
	resolved := t.resolver.Resolve(guildID, announcement.Results)
	return t.recorder.Commit(guildID, msg.ID, msg.Timestamp, resolved)
}
