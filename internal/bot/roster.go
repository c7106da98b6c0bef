package bot

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"wordle-tracker/internal/wordle"
)

// memberRoster resolves display names from the session's member cache,
// falling back to the REST API when the member is not cached.
type memberRoster struct {
	session *discordgo.Session
}

func (r *memberRoster) DisplayName(guildID, userID string) (string, error) {
	member, err := r.session.State.Member(guildID, userID)
	if err != nil {
		member, err = r.session.GuildMember(guildID, userID)
		if err != nil {
			if isUnknownMember(err) {
				return "", wordle.ErrMemberNotFound
			}
			return "", err
		}
	}
	return memberDisplayName(member), nil
}

func memberDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		if member.User.GlobalName != "" {
			return member.User.GlobalName
		}
		return member.User.Username
	}
	return ""
}

func isUnknownMember(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return false
	}
	if rest.Message != nil && rest.Message.Code == discordgo.ErrCodeUnknownMember {
		return true
	}
	return rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound
}
