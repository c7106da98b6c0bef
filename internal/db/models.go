package db

import (
	"time"

	"gorm.io/datatypes"
)

// GuildPlayer identifies a player within one guild. Rows are created lazily
// on the first resolved play and afterwards only refresh updated_at.
type GuildPlayer struct {
	GuildID   string    `gorm:"primaryKey;size:32"`
	PlayerID  string    `gorm:"primaryKey;size:32"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Plays     []Play    `gorm:"foreignKey:GuildID,PlayerID;references:GuildID,PlayerID;constraint:OnDelete:CASCADE"`
}

// Play is one attributed outcome from a results announcement. PlayerID is
// NULL for name-only rows where no identity could be resolved; those rows
// stay out of player-indexed stats. The (guild, player, message) unique
// index is the idempotency boundary for replays; the partial unique index
// created by Migrate covers the NULL-player case, which the composite index
// cannot (Postgres treats NULLs as distinct).
type Play struct {
	ID         uint    `gorm:"primaryKey"`
	GuildID    string  `gorm:"size:32;not null;index:idx_plays_guild_player;uniqueIndex:idx_plays_guild_player_message"`
	PlayerID   *string `gorm:"size:32;index:idx_plays_guild_player;uniqueIndex:idx_plays_guild_player_message"`
	MessageID  string  `gorm:"size:32;not null;uniqueIndex:idx_plays_guild_player_message"`
	PlayerName string  `gorm:"size:100;not null;default:''"`
	// Guesses is nil when the player failed the puzzle that day.
	Guesses   *int
	Crown     bool      `gorm:"not null;default:false"`
	PlayedAt  time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// BackfillRun records one historical scan, forced or not. It doubles as the
// durable "already scanned" state for the bootstrap guard.
type BackfillRun struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	Forced            bool   `gorm:"not null;default:false"`
	StartedAt         time.Time
	FinishedAt        *time.Time
	MessagesProcessed int            `gorm:"not null;default:0"`
	PlaysSaved        int            `gorm:"not null;default:0"`
	Channels          datatypes.JSON `gorm:"type:jsonb"`
}
