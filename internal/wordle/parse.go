package wordle

import (
	"regexp"
	"strconv"
	"strings"
)

// The daily announcement always opens with the streak banner; that line is
// the filter separating announcements from all other chat traffic. Body
// lines carry one score band each: "3/6: <@111> <@222>" or "X/6: @Name"
// when the announcer failed to resolve a mention.
var (
	leadInPattern    = regexp.MustCompile(`\*\*Your group is on an? (\d+) day streak!\*\*\s*🔥*\s*Here are yesterday's results:`)
	scoreLinePattern = regexp.MustCompile(`([1-6X])/6:\s*(.+)`)
	mentionPattern   = regexp.MustCompile(`<@!?(\d+)>`)
	// A bare "@" introduces a plain display name, possibly multi-word.
	// Mention tokens are excluded by checking the preceding rune for "<"
	// at each match site, so adjacent names like "@A@B" both register.
	fallbackNamePattern = regexp.MustCompile(`@([^\s@]+(?: [^\s@<]+)*)`)
)

// RefKind tags how a tentative result names its player.
type RefKind int

const (
	// RefUser is a platform mention token carrying the durable user ID.
	RefUser RefKind = iota
	// RefName is a display-name fallback with no hard reference.
	RefName
)

// TentativeResult is one unreconciled outcome extracted from a score line.
type TentativeResult struct {
	Kind   RefKind
	UserID string // set for RefUser
	Name   string // set for RefName
	// Guesses is nil when the line carried the failure marker.
	Guesses *int
	Crown   bool
}

// Announcement is a parsed daily-results message.
type Announcement struct {
	StreakDays int
	Results    []TentativeResult
}

// ParseAnnouncement extracts tentative results from one raw message.
// It returns nil when the content is not a results announcement, or when
// the banner matched but no score line yielded a result; neither case is
// an error.
func ParseAnnouncement(content string) *Announcement {
	banner := leadInPattern.FindStringSubmatch(content)
	if banner == nil {
		return nil
	}
	streakDays, _ := strconv.Atoi(banner[1])

	var results []TentativeResult
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		score := scoreLinePattern.FindStringSubmatch(line)
		if score == nil {
			continue
		}
		var guesses *int
		if score[1] != "X" {
			n, _ := strconv.Atoi(score[1])
			guesses = &n
		}
		crown := strings.Contains(line, "👑")
		attribution := score[2]

		for _, m := range mentionPattern.FindAllStringSubmatch(attribution, -1) {
			results = append(results, TentativeResult{
				Kind:    RefUser,
				UserID:  m[1],
				Guesses: guesses,
				Crown:   crown,
			})
		}
		for _, m := range fallbackNamePattern.FindAllStringSubmatchIndex(attribution, -1) {
			if m[0] > 0 && attribution[m[0]-1] == '<' {
				continue
			}
			results = append(results, TentativeResult{
				Kind:    RefName,
				Name:    attribution[m[2]:m[3]],
				Guesses: guesses,
				Crown:   crown,
			})
		}
	}
	if len(results) == 0 {
		return nil
	}
	return &Announcement{StreakDays: streakDays, Results: results}
}
