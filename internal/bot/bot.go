package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wordle-tracker/internal/config"
	"wordle-tracker/internal/db"
	"wordle-tracker/internal/logging"
	"wordle-tracker/internal/wordle"
)

// Bot wires the Discord session to the tracking pipeline. All pipeline
// errors are logged here and never propagated back into the session's
// event dispatch.
type Bot struct {
	session *discordgo.Session
	store   *db.Store
	roster  *memberRoster
	tracker *wordle.Tracker
	scanner *wordle.Scanner
	cfg     config.Config

	mu              sync.Mutex
	backfillStarted bool
}

func New(session *discordgo.Session, conn *gorm.DB, cfg config.Config) *Bot {
	store := db.NewStore(conn)
	roster := &memberRoster{session: session}
	resolver := wordle.NewResolver(roster, store,
		time.Duration(cfg.NameMatchWindowDays)*24*time.Hour)
	tracker := wordle.NewTracker(resolver, wordle.NewRecorder(conn), cfg.AnnouncerID)

	scanCfg := wordle.DefaultScanConfig()
	scanCfg.ProbeWindow = time.Duration(cfg.BackfillProbeDays) * 24 * time.Hour
	scanCfg.BatchWindow = time.Duration(cfg.BackfillBatchDays) * 24 * time.Hour
	scanCfg.MaxGap = time.Duration(cfg.BackfillMaxGapDays) * 24 * time.Hour
	scanCfg.Throttle = time.Duration(cfg.BackfillThrottleMillis) * time.Millisecond
	scanner := wordle.NewScanner(&channelHistory{session: session}, tracker, store,
		cfg.AnnouncerID, scanCfg)

	return &Bot{
		session: session,
		store:   store,
		roster:  roster,
		tracker: tracker,
		scanner: scanner,
		cfg:     cfg,
	}
}

func (b *Bot) Start() error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onInteraction)
	return b.session.Open()
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, ready *discordgo.Ready) {
	guilds := make([]string, 0, len(ready.Guilds))
	for _, guild := range ready.Guilds {
		guilds = append(guilds, guild.ID)
	}
	logging.L().Info("logged in",
		zap.String("user", ready.User.Username),
		zap.Int("guilds", len(guilds)))

	if err := b.registerCommands(); err != nil {
		logging.L().Error("registering commands failed", zap.Error(err))
	}
	if b.claimBackfill() {
		go b.runBackfill(guilds, false)
	}
}

// claimBackfill hands the one-time bootstrap scan to exactly one ready
// event; the database guard inside the scanner makes restarts safe too.
func (b *Bot) claimBackfill() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.backfillStarted {
		return false
	}
	b.backfillStarted = true
	return true
}

func (b *Bot) runBackfill(guilds []string, force bool) {
	if _, err := b.scanner.Run(guilds, force); err != nil {
		logging.L().Error("historical scan failed", zap.Error(err))
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" || m.Author == nil {
		return
	}
	msg := wordle.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if err := b.tracker.HandleMessage(m.GuildID, msg); err != nil {
		logging.L().Error("processing announcement failed",
			zap.String("guild", m.GuildID),
			zap.String("channel", m.ChannelID),
			zap.String("message", m.ID),
			zap.Error(err))
	}
}
