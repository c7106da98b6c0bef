package wordle

import (
	"sort"

	"wordle-tracker/internal/db"
)

const (
	// failureGuesses is the attempts value a failed puzzle contributes to
	// the smoothed leaderboard average.
	failureGuesses = 6
	// leaderboardSmoothing pulls low-volume players toward the failure cap
	// so one lucky week cannot top the board.
	leaderboardSmoothing = 5
)

// PlayerStats are the aggregates behind the stats command.
type PlayerStats struct {
	Games   int
	Wins    int
	Failed  int
	WinRate float64 // percent
	// AvgGuesses averages winning games only; zero when there are no wins.
	AvgGuesses   float64
	Distribution [6]int // index i = games solved in i+1 guesses
}

// ComputeStats aggregates one player's plays.
func ComputeStats(plays []db.Play) PlayerStats {
	var stats PlayerStats
	stats.Games = len(plays)
	total := 0
	for _, play := range plays {
		if play.Guesses == nil {
			stats.Failed++
			continue
		}
		stats.Wins++
		total += *play.Guesses
		if *play.Guesses >= 1 && *play.Guesses <= 6 {
			stats.Distribution[*play.Guesses-1]++
		}
	}
	if stats.Games > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.Games) * 100
	}
	if stats.Wins > 0 {
		stats.AvgGuesses = float64(total) / float64(stats.Wins)
	}
	return stats
}

// LeaderboardScore ranks players; lower is better. The average is smoothed
// toward the failure cap by a constant weight, then discounted by win rate.
func LeaderboardScore(avgGuesses, winRatePercent float64, wins int) float64 {
	effectiveAvg := (avgGuesses*float64(wins) + failureGuesses*leaderboardSmoothing) /
		float64(wins+leaderboardSmoothing)
	return effectiveAvg - winRatePercent/100
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	PlayerID string
	Stats    PlayerStats
	Score    float64
}

// Leaderboard ranks every player with at least one play, best score first.
func Leaderboard(playsByPlayer map[string][]db.Play) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(playsByPlayer))
	for playerID, plays := range playsByPlayer {
		if len(plays) == 0 {
			continue
		}
		stats := ComputeStats(plays)
		avg := stats.AvgGuesses
		if stats.Wins == 0 {
			avg = failureGuesses
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID: playerID,
			Stats:    stats,
			Score:    LeaderboardScore(avg, stats.WinRate, stats.Wins),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	return entries
}
