package wordle

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wordle-tracker/internal/db"
)

// Recorder commits resolved results. The whole batch for one announcement
// is a single transaction: either every result lands or none do, and the
// caller retries or skips the message as a unit.
type Recorder struct {
	conn *gorm.DB
}

func NewRecorder(conn *gorm.DB) *Recorder {
	return &Recorder{conn: conn}
}

// Commit persists the results of one announcement. Replays are no-ops: the
// (guild, player, message) unique index rejects attributed duplicates and
// the partial unique index rejects name-only duplicates, both absorbed via
// ON CONFLICT DO NOTHING. Returns the number of results evaluated.
func (r *Recorder) Commit(guildID, messageID string, playedAt time.Time, results []Resolved) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}
	err := r.conn.Transaction(func(tx *gorm.DB) error {
		for _, result := range results {
			if result.PlayerID == nil {
				if err := insertNameOnlyPlay(tx, guildID, messageID, playedAt, result); err != nil {
					return err
				}
				continue
			}
			if err := ensureGuildPlayer(tx, guildID, *result.PlayerID); err != nil {
				return fmt.Errorf("ensure player %s: %w", *result.PlayerID, err)
			}
			play := db.Play{
				GuildID:    guildID,
				PlayerID:   result.PlayerID,
				MessageID:  messageID,
				PlayerName: result.Name,
				Guesses:    result.Guesses,
				Crown:      result.Crown,
				PlayedAt:   playedAt.UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&play).Error; err != nil {
				return fmt.Errorf("insert play for %s: %w", *result.PlayerID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// ensureGuildPlayer creates the parent row before the play references it;
// an existing row only gets its updated_at refreshed.
func ensureGuildPlayer(tx *gorm.DB, guildID, playerID string) error {
	player := db.GuildPlayer{GuildID: guildID, PlayerID: playerID}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "player_id"}},
		DoUpdates: clause.Assignments(map[string]any{"updated_at": time.Now().UTC()}),
	}).Create(&player).Error
}

func insertNameOnlyPlay(tx *gorm.DB, guildID, messageID string, playedAt time.Time, result Resolved) error {
	play := db.Play{
		GuildID:    guildID,
		MessageID:  messageID,
		PlayerName: result.Name,
		Guesses:    result.Guesses,
		Crown:      result.Crown,
		PlayedAt:   playedAt.UTC(),
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&play).Error; err != nil {
		return fmt.Errorf("insert name-only play for %q: %w", result.Name, err)
	}
	return nil
}
