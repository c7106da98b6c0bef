package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"wordle-tracker/internal/logging"
	"wordle-tracker/internal/wordle"
)

const (
	cmdStats       = "wordle_stats"
	cmdLeaderboard = "wordle_leaderboard"
	cmdRescan      = "rescan_wordle"
)

// registerCommands overwrites the command set, scoped to the test guild
// when one is configured and global otherwise.
func (b *Bot) registerCommands() error {
	adminOnly := int64(discordgo.PermissionAdministrator)
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        cmdStats,
			Description: "Show Wordle statistics for a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to show (defaults to you)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "days",
					Description: "Number of days back to include (optional)",
				},
			},
		},
		{
			Name:        cmdLeaderboard,
			Description: "Show the Wordle leaderboard for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "days",
					Description: "Number of days back to include (optional)",
				},
			},
		},
		{
			Name:                     cmdRescan,
			Description:              "Re-run the historical scan, bypassing the bootstrap guard",
			DefaultMemberPermissions: &adminOnly,
		},
	}
	_, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID, b.cfg.TestGuildID, commands)
	return err
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand || i.GuildID == "" {
		return
	}
	var err error
	switch i.ApplicationCommandData().Name {
	case cmdStats:
		err = b.handleStats(i)
	case cmdLeaderboard:
		err = b.handleLeaderboard(i)
	case cmdRescan:
		err = b.handleRescan(i)
	default:
		return
	}
	if err != nil {
		logging.L().Error("command failed",
			zap.String("command", i.ApplicationCommandData().Name),
			zap.String("guild", i.GuildID),
			zap.Error(err))
	}
}

func (b *Bot) handleStats(i *discordgo.InteractionCreate) error {
	if err := b.deferResponse(i, false); err != nil {
		return err
	}
	options := commandOptions(i)

	target := i.Member.User
	if opt, ok := options["user"]; ok {
		target = opt.UserValue(b.session)
	}
	since := sinceFromOption(options["days"])

	plays, err := b.store.PlayerPlays(i.GuildID, target.ID, since)
	if err != nil {
		return b.followupText(i, fmt.Sprintf("Error retrieving stats: %v", err), true)
	}
	if len(plays) == 0 {
		return b.followupText(i,
			fmt.Sprintf("No Wordle data found for %s", target.Username), true)
	}

	stats := wordle.ComputeStats(plays)
	name, err := b.roster.DisplayName(i.GuildID, target.ID)
	if err != nil || name == "" {
		name = target.Username
	}
	return b.followupEmbed(i, statsEmbed(name, target.AvatarURL(""), stats))
}

func (b *Bot) handleLeaderboard(i *discordgo.InteractionCreate) error {
	if err := b.deferResponse(i, false); err != nil {
		return err
	}
	options := commandOptions(i)
	since := sinceFromOption(options["days"])
	days := 0
	if opt, ok := options["days"]; ok {
		days = int(opt.IntValue())
	}

	byPlayer, err := b.store.GuildPlays(i.GuildID, since)
	if err != nil {
		return b.followupText(i, fmt.Sprintf("Error generating leaderboard: %v", err), true)
	}
	entries := wordle.Leaderboard(byPlayer)
	if len(entries) == 0 {
		return b.followupText(i, "No Wordle data found for this server!", true)
	}

	names := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, err := b.roster.DisplayName(i.GuildID, entry.PlayerID)
		if err != nil || name == "" {
			name = fmt.Sprintf("User %s", entry.PlayerID)
		}
		names[entry.PlayerID] = name
	}
	return b.followupEmbed(i, leaderboardEmbed(entries, names, days))
}

func (b *Bot) handleRescan(i *discordgo.InteractionCreate) error {
	if err := b.deferResponse(i, true); err != nil {
		return err
	}
	if err := b.followupText(i, "Starting manual rescan...", true); err != nil {
		return err
	}
	b.runBackfill(b.guildIDs(), true)
	return b.followupText(i, "Rescan completed!", true)
}

func (b *Bot) guildIDs() []string {
	guilds := make([]string, 0, len(b.session.State.Guilds))
	for _, guild := range b.session.State.Guilds {
		guilds = append(guilds, guild.ID)
	}
	return guilds
}

func (b *Bot) deferResponse(i *discordgo.InteractionCreate, ephemeral bool) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		response.Data = &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		}
	}
	return b.session.InteractionRespond(i.Interaction, response)
}

func (b *Bot) followupText(i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := b.session.FollowupMessageCreate(i.Interaction, true, params)
	return err
}

func (b *Bot) followupEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	_, err := b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		options[opt.Name] = opt
	}
	return options
}

func sinceFromOption(opt *discordgo.ApplicationCommandInteractionDataOption) *time.Time {
	if opt == nil {
		return nil
	}
	days := int(opt.IntValue())
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return &cutoff
}
