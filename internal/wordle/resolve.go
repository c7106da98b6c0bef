package wordle

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"wordle-tracker/internal/logging"
)

// ErrMemberNotFound is returned by a Roster when the referenced user is no
// longer in the guild.
var ErrMemberNotFound = errors.New("member not found")

// Roster looks up live guild members; implementations are expected to try
// a cache before falling back to the network.
type Roster interface {
	DisplayName(guildID, userID string) (string, error)
}

// RecentPlayFinder searches stored plays for a display-name match, used to
// repair results the announcer failed to mention properly.
type RecentPlayFinder interface {
	RecentPlayerByName(guildID, name string, start, end time.Time) (string, bool, error)
}

// Resolved is a tentative result after identity reconciliation. PlayerID is
// nil when no durable player key could be determined; such results are
// persisted name-only and excluded from player-indexed stats.
type Resolved struct {
	PlayerID *string
	Name     string
	Guesses  *int
	Crown    bool
}

type Resolver struct {
	roster Roster
	plays  RecentPlayFinder
	// window is the half-width of the symmetric interval around now that
	// a prior play's timestamp must fall in for a name match to count.
	window time.Duration
	now    func() time.Time
}

func NewResolver(roster Roster, plays RecentPlayFinder, window time.Duration) *Resolver {
	return &Resolver{roster: roster, plays: plays, window: window, now: time.Now}
}

// Resolve maps each tentative result to a durable player key where
// possible. Lookup failures degrade individual results, never the batch.
func (r *Resolver) Resolve(guildID string, results []TentativeResult) []Resolved {
	resolved := make([]Resolved, 0, len(results))
	for _, result := range results {
		switch result.Kind {
		case RefUser:
			resolved = append(resolved, r.resolveUser(guildID, result))
		case RefName:
			resolved = append(resolved, r.resolveName(guildID, result))
		}
	}
	return resolved
}

// resolveUser treats the mention token itself as the durable player key;
// the roster only supplies the display name at the time of the play. A
// member who has since left keeps the key and loses the name.
func (r *Resolver) resolveUser(guildID string, result TentativeResult) Resolved {
	userID := result.UserID
	name, err := r.roster.DisplayName(guildID, userID)
	if errors.Is(err, ErrMemberNotFound) {
		logging.L().Debug("mentioned member no longer in guild",
			zap.String("guild", guildID), zap.String("user", userID))
		name = ""
	} else if err != nil {
		logging.L().Warn("roster lookup failed",
			zap.String("guild", guildID), zap.String("user", userID), zap.Error(err))
		name = ""
	}
	return Resolved{
		PlayerID: &userID,
		Name:     name,
		Guesses:  result.Guesses,
		Crown:    result.Crown,
	}
}

func (r *Resolver) resolveName(guildID string, result TentativeResult) Resolved {
	resolved := Resolved{
		Name:    result.Name,
		Guesses: result.Guesses,
		Crown:   result.Crown,
	}
	now := r.now()
	playerID, ok, err := r.plays.RecentPlayerByName(guildID, result.Name, now.Add(-r.window), now.Add(r.window))
	if err != nil {
		logging.L().Warn("name fallback search failed",
			zap.String("guild", guildID), zap.String("name", result.Name), zap.Error(err))
		return resolved
	}
	if !ok {
		logging.L().Info("could not match fallback name to a player",
			zap.String("guild", guildID), zap.String("name", result.Name))
		return resolved
	}
	logging.L().Info("matched fallback name via recent plays",
		zap.String("guild", guildID), zap.String("name", result.Name), zap.String("player", playerID))
	resolved.PlayerID = &playerID
	return resolved
}
