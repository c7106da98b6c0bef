package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"wordle-tracker/internal/wordle"
)

const (
	embedColorGreen = 0x2ecc71
	embedColorGold  = 0xf1c40f

	maxBarLength       = 20
	leaderboardMaxRows = 10
)

func statsEmbed(displayName, avatarURL string, stats wordle.PlayerStats) *discordgo.MessageEmbed {
	avgValue := "N/A"
	if stats.AvgGuesses > 0 {
		avgValue = fmt.Sprintf("%.1f", stats.AvgGuesses)
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Wordle Stats for %s", displayName),
		Color: embedColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Games", Value: fmt.Sprintf("%d", stats.Games), Inline: true},
			{Name: "Win Rate", Value: fmt.Sprintf("%.1f%%", stats.WinRate), Inline: true},
			{Name: "Avg Guesses", Value: avgValue, Inline: true},
		},
	}
	if dist := distributionText(stats.Distribution); dist != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Guess Distribution", Value: dist,
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Failed Games", Value: fmt.Sprintf("%d", stats.Failed), Inline: true,
	})
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}

// distributionText renders one bar per guess count, scaled so the largest
// bucket fills maxBarLength cells.
func distributionText(distribution [6]int) string {
	max := 0
	for _, count := range distribution {
		if count > max {
			max = count
		}
	}
	if max == 0 {
		return ""
	}
	var lines []string
	for i, count := range distribution {
		if count == 0 {
			continue
		}
		width := count * maxBarLength / max
		if width < 1 {
			width = 1
		}
		lines = append(lines, fmt.Sprintf("%d/6: %s (%d)", i+1, strings.Repeat("█", width), count))
	}
	return strings.Join(lines, "\n")
}

func leaderboardEmbed(entries []wordle.LeaderboardEntry, names map[string]string, days int) *discordgo.MessageEmbed {
	title := "🏆 Wordle Leaderboard"
	if days > 0 {
		title += fmt.Sprintf(" (last %d days)", days)
	}
	medals := []string{"🥇", "🥈", "🥉"}

	var body strings.Builder
	for rank, entry := range entries {
		if rank >= leaderboardMaxRows {
			break
		}
		marker := fmt.Sprintf("%d.", rank+1)
		if rank < len(medals) {
			marker = medals[rank]
		}
		fmt.Fprintf(&body, "%s **%s**\n", marker, names[entry.PlayerID])
		avg := "N/A"
		if entry.Stats.AvgGuesses > 0 {
			avg = fmt.Sprintf("%.1f", entry.Stats.AvgGuesses)
		}
		fmt.Fprintf(&body, "   Win Rate: %.1f%% | Avg: %s | Games: %d\n\n",
			entry.Stats.WinRate, avg, entry.Stats.Games)
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       embedColorGold,
		Description: body.String(),
	}
}
