package wordle

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"wordle-tracker/internal/db"
	"wordle-tracker/internal/logging"
)

// Channel is the platform-independent shape of a guild text channel.
type Channel struct {
	ID   string
	Name string
}

// History pages through channel message history, newest first within the
// requested interval.
type History interface {
	GuildChannels(guildID string) ([]Channel, error)
	Messages(channelID string, after, before time.Time, limit int) ([]Message, error)
}

type announcementRecorder interface {
	RecordAnnouncement(guildID string, msg Message, announcement *Announcement) (int, error)
}

type runStore interface {
	AnyPlays() (bool, error)
	CreateRun(run *db.BackfillRun) error
	FinishRun(run *db.BackfillRun) error
}

// ScanConfig tunes the two-phase historical scan.
type ScanConfig struct {
	// ProbeWindow is how far back the cheap first pass looks; channels
	// with no recognized announcement in it are skipped entirely.
	ProbeWindow time.Duration
	// BatchWindow is the size of each backward step of the deep scan.
	BatchWindow time.Duration
	// MaxGap is the consecutive announcement-free span after which the
	// game is assumed to have stopped in that channel. Total lookback is
	// otherwise uncapped.
	MaxGap time.Duration
	// Throttle is the pause between processed messages, bounding the rate
	// of roster lookups triggered by resolution.
	Throttle   time.Duration
	ProbeLimit int
	BatchLimit int
}

func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		ProbeWindow: 7 * 24 * time.Hour,
		BatchWindow: 7 * 24 * time.Hour,
		MaxGap:      30 * 24 * time.Hour,
		Throttle:    50 * time.Millisecond,
		ProbeLimit:  500,
		BatchLimit:  200,
	}
}

// Scanner reconstructs play history from channel archives, funnelling
// every recognized announcement through the same pipeline as the live
// path. Idempotent persistence makes re-scanning previously seen messages
// safe.
type Scanner struct {
	history     History
	recorder    announcementRecorder
	store       runStore
	announcerID string
	cfg         ScanConfig
	now         func() time.Time
}

func NewScanner(history History, recorder announcementRecorder, store runStore, announcerID string, cfg ScanConfig) *Scanner {
	return &Scanner{
		history:     history,
		recorder:    recorder,
		store:       store,
		announcerID: announcerID,
		cfg:         cfg,
		now:         time.Now,
	}
}

// ChannelSummary is the per-channel outcome recorded on the run row.
type ChannelSummary struct {
	Name      string `json:"name"`
	Skipped   bool   `json:"skipped,omitempty"`
	Messages  int    `json:"messages"`
	Plays     int    `json:"plays"`
	DaysDeep  int    `json:"days_deep"`
	LastError string `json:"last_error,omitempty"`
}

// Run scans every guild's channels. Unless forced, it refuses to run when
// any play row already exists: the scan is a one-time bootstrap, and the
// database itself carries that state. Returns nil when skipped.
func (s *Scanner) Run(guildIDs []string, force bool) (*db.BackfillRun, error) {
	if !force {
		scanned, err := s.store.AnyPlays()
		if err != nil {
			return nil, err
		}
		if scanned {
			logging.L().Info("database already contains plays, skipping historical scan")
			return nil, nil
		}
	}

	run := &db.BackfillRun{
		ID:        uuid.NewString(),
		Forced:    force,
		StartedAt: s.now().UTC(),
	}
	if err := s.store.CreateRun(run); err != nil {
		return nil, err
	}
	log := logging.L().With(zap.String("run", run.ID))
	log.Info("starting historical scan", zap.Bool("forced", force))

	summaries := make(map[string]ChannelSummary)
	for _, guildID := range guildIDs {
		channels, err := s.history.GuildChannels(guildID)
		if err != nil {
			log.Error("listing channels failed", zap.String("guild", guildID), zap.Error(err))
			continue
		}
		for _, channel := range channels {
			summary := s.scanChannel(log, guildID, channel)
			run.MessagesProcessed += summary.Messages
			run.PlaysSaved += summary.Plays
			summaries[channel.ID] = summary
		}
	}

	finished := s.now().UTC()
	run.FinishedAt = &finished
	if payload, err := json.Marshal(summaries); err == nil {
		run.Channels = datatypes.JSON(payload)
	}
	if err := s.store.FinishRun(run); err != nil {
		log.Error("recording run outcome failed", zap.Error(err))
	}
	log.Info("historical scan complete",
		zap.Int("messages", run.MessagesProcessed),
		zap.Int("plays", run.PlaysSaved))
	return run, nil
}

// scanChannel probes the recent window first and only deep-scans channels
// where the game is actually played. Failures are confined to the channel.
func (s *Scanner) scanChannel(log *zap.Logger, guildID string, channel Channel) ChannelSummary {
	summary := ChannelSummary{Name: channel.Name}
	log = log.With(zap.String("guild", guildID), zap.String("channel", channel.ID))

	now := s.now()
	probe, err := s.history.Messages(channel.ID, now.Add(-s.cfg.ProbeWindow), now, s.cfg.ProbeLimit)
	if err != nil {
		log.Warn("probe scan failed", zap.Error(err))
		summary.LastError = err.Error()
		return summary
	}
	found := false
	for _, msg := range probe {
		if msg.AuthorID == s.announcerID && ParseAnnouncement(msg.Content) != nil {
			found = true
			break
		}
	}
	if !found {
		log.Info("no announcements in probe window, skipping channel")
		summary.Skipped = true
		return summary
	}

	log.Info("announcements found, deep scanning")
	var gap time.Duration
	cursor := now
	for gap < s.cfg.MaxGap {
		batchStart := cursor.Add(-s.cfg.BatchWindow)
		batch, err := s.history.Messages(channel.ID, batchStart, cursor, s.cfg.BatchLimit)
		if err != nil {
			log.Warn("batch scan failed, stopping channel", zap.Error(err))
			summary.LastError = err.Error()
			break
		}

		batchHits := 0
		for _, msg := range batch {
			if msg.AuthorID != s.announcerID {
				continue
			}
			announcement := ParseAnnouncement(msg.Content)
			if announcement == nil {
				continue
			}
			batchHits++
			saved, err := s.recorder.RecordAnnouncement(guildID, msg, announcement)
			if err != nil {
				if db.IsUniqueViolation(err) {
					log.Debug("announcement already recorded", zap.String("message", msg.ID))
				} else {
					log.Error("recording announcement failed",
						zap.String("message", msg.ID), zap.Error(err))
				}
				continue
			}
			summary.Messages++
			summary.Plays += saved
			time.Sleep(s.cfg.Throttle)
		}

		if batchHits > 0 {
			gap = 0
		} else {
			gap += s.cfg.BatchWindow
		}
		summary.DaysDeep += int(s.cfg.BatchWindow / (24 * time.Hour))
		cursor = batchStart
	}
	if gap >= s.cfg.MaxGap {
		log.Info("gap limit reached, stopping channel",
			zap.Int("days_deep", summary.DaysDeep))
	}
	return summary
}
