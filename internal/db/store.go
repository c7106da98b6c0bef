package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Store wraps the read-side queries used by the resolver, the stats
// commands and the backfill guard.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

// AnyPlays reports whether at least one play row exists anywhere. Used as
// the unscanned-database heuristic guarding the bootstrap backfill.
func (s *Store) AnyPlays() (bool, error) {
	var play Play
	err := s.conn.Select("id").Limit(1).Take(&play).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecentPlayerByName finds the player key of the most recent attributed
// play in the guild whose stored display name matches, within
// [start, end]. Most-recent-first is the deterministic tie-break among
// multiple candidates in the window.
func (s *Store) RecentPlayerByName(guildID, name string, start, end time.Time) (string, bool, error) {
	var play Play
	err := s.conn.
		Where("guild_id = ? AND player_name = ? AND player_id IS NOT NULL", guildID, name).
		Where("played_at BETWEEN ? AND ?", start, end).
		Order("played_at DESC").
		First(&play).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return *play.PlayerID, true, nil
}

// PlayerPlays returns one player's plays in a guild, oldest first,
// optionally restricted to plays at or after since.
func (s *Store) PlayerPlays(guildID, playerID string, since *time.Time) ([]Play, error) {
	query := s.conn.Where("guild_id = ? AND player_id = ?", guildID, playerID)
	if since != nil {
		query = query.Where("played_at >= ?", *since)
	}
	var plays []Play
	if err := query.Order("played_at ASC").Find(&plays).Error; err != nil {
		return nil, err
	}
	return plays, nil
}

// GuildPlays returns all attributed plays in a guild keyed by player,
// optionally restricted to plays at or after since. Name-only rows
// (NULL player key) are excluded from player-indexed statistics.
func (s *Store) GuildPlays(guildID string, since *time.Time) (map[string][]Play, error) {
	query := s.conn.Where("guild_id = ? AND player_id IS NOT NULL", guildID)
	if since != nil {
		query = query.Where("played_at >= ?", *since)
	}
	var plays []Play
	if err := query.Order("played_at ASC").Find(&plays).Error; err != nil {
		return nil, err
	}
	byPlayer := make(map[string][]Play)
	for _, play := range plays {
		byPlayer[*play.PlayerID] = append(byPlayer[*play.PlayerID], play)
	}
	return byPlayer, nil
}

// CreateRun persists the start of a backfill run.
func (s *Store) CreateRun(run *BackfillRun) error {
	return s.conn.Create(run).Error
}

// FinishRun writes the final counters and channel summary of a run.
func (s *Store) FinishRun(run *BackfillRun) error {
	return s.conn.Model(&BackfillRun{}).Where("id = ?", run.ID).Updates(map[string]any{
		"finished_at":        run.FinishedAt,
		"messages_processed": run.MessagesProcessed,
		"plays_saved":        run.PlaysSaved,
		"channels":           run.Channels,
	}).Error
}
