package wordle

import "testing"

const announcement = "**Your group is on a 5 day streak!** 🔥 Here are yesterday's results:\n" +
	"3/6: <@111>\n" +
	"👑 2/6: <@222> <@333>\n" +
	"X/6: @Some User"

func TestParseIgnoresNonAnnouncements(t *testing.T) {
	for _, content := range []string{
		"",
		"just chatting about wordle",
		"**Your group is on a 5 day streak!**",
		"3/6: <@111>",
	} {
		if got := ParseAnnouncement(content); got != nil {
			t.Fatalf("expected nil for %q, got %#v", content, got)
		}
	}
}

func TestParseReturnsNilWhenNoScoreLinesMatch(t *testing.T) {
	content := "**Your group is on a 2 day streak!** 🔥 Here are yesterday's results:\nnobody played"
	if got := ParseAnnouncement(content); got != nil {
		t.Fatalf("expected nil when no results, got %#v", got)
	}
}

func TestParseFullAnnouncement(t *testing.T) {
	parsed := ParseAnnouncement(announcement)
	if parsed == nil {
		t.Fatal("expected announcement to parse")
	}
	if parsed.StreakDays != 5 {
		t.Fatalf("expected streak 5, got %d", parsed.StreakDays)
	}
	if len(parsed.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(parsed.Results))
	}

	first := parsed.Results[0]
	if first.Kind != RefUser || first.UserID != "111" || first.Crown {
		t.Fatalf("unexpected first result: %#v", first)
	}
	if first.Guesses == nil || *first.Guesses != 3 {
		t.Fatalf("expected 3 guesses, got %v", first.Guesses)
	}

	for i, wantID := range []string{"222", "333"} {
		result := parsed.Results[i+1]
		if result.Kind != RefUser || result.UserID != wantID {
			t.Fatalf("unexpected crowned result %d: %#v", i, result)
		}
		if result.Guesses == nil || *result.Guesses != 2 {
			t.Fatalf("expected 2 guesses, got %v", result.Guesses)
		}
		if !result.Crown {
			t.Fatalf("expected crown flag on result %d", i)
		}
	}

	last := parsed.Results[3]
	if last.Kind != RefName || last.Name != "Some User" {
		t.Fatalf("unexpected fallback result: %#v", last)
	}
	if last.Guesses != nil {
		t.Fatalf("expected failed play, got %d guesses", *last.Guesses)
	}
	if last.Crown {
		t.Fatal("expected no crown on fallback result")
	}
}

func TestParseArticleVariant(t *testing.T) {
	content := "**Your group is on an 8 day streak!** 🔥🔥 Here are yesterday's results:\n4/6: <@12>"
	parsed := ParseAnnouncement(content)
	if parsed == nil {
		t.Fatal("expected announcement with \"an\" to parse")
	}
	if parsed.StreakDays != 8 {
		t.Fatalf("expected streak 8, got %d", parsed.StreakDays)
	}
}

func TestParseWithoutFlameDecoration(t *testing.T) {
	content := "**Your group is on a 1 day streak!** Here are yesterday's results:\n5/6: <@12>"
	if ParseAnnouncement(content) == nil {
		t.Fatal("expected announcement without flames to parse")
	}
}

func TestParseNicknameMention(t *testing.T) {
	content := "**Your group is on a 3 day streak!** 🔥 Here are yesterday's results:\n1/6: <@!444>"
	parsed := ParseAnnouncement(content)
	if parsed == nil {
		t.Fatal("expected announcement to parse")
	}
	if len(parsed.Results) != 1 || parsed.Results[0].UserID != "444" {
		t.Fatalf("unexpected results: %#v", parsed.Results)
	}
}

func TestParseMixedAttributionLine(t *testing.T) {
	content := "**Your group is on a 3 day streak!** 🔥 Here are yesterday's results:\n4/6: <@555> @Solo"
	parsed := ParseAnnouncement(content)
	if parsed == nil {
		t.Fatal("expected announcement to parse")
	}
	if len(parsed.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(parsed.Results))
	}
	if parsed.Results[0].Kind != RefUser || parsed.Results[0].UserID != "555" {
		t.Fatalf("unexpected mention result: %#v", parsed.Results[0])
	}
	if parsed.Results[1].Kind != RefName || parsed.Results[1].Name != "Solo" {
		t.Fatalf("unexpected fallback result: %#v", parsed.Results[1])
	}
}

func TestParseAdjacentFallbackNames(t *testing.T) {
	content := "**Your group is on a 3 day streak!** 🔥 Here are yesterday's results:\nX/6: @Ada@Bob"
	parsed := ParseAnnouncement(content)
	if parsed == nil {
		t.Fatal("expected announcement to parse")
	}
	if len(parsed.Results) != 2 {
		t.Fatalf("expected 2 results, got %#v", parsed.Results)
	}
	for i, wantName := range []string{"Ada", "Bob"} {
		result := parsed.Results[i]
		if result.Kind != RefName || result.Name != wantName {
			t.Fatalf("unexpected result %d: %#v", i, result)
		}
	}
}

func TestParseToleratesBlankLinesAndWhitespace(t *testing.T) {
	content := "**Your group is on a 3 day streak!** 🔥 Here are yesterday's results:\n\n   \n  6/6: <@9>  \nsomething else\n"
	parsed := ParseAnnouncement(content)
	if parsed == nil {
		t.Fatal("expected announcement to parse")
	}
	if len(parsed.Results) != 1 || parsed.Results[0].UserID != "9" {
		t.Fatalf("unexpected results: %#v", parsed.Results)
	}
	if parsed.Results[0].Guesses == nil || *parsed.Results[0].Guesses != 6 {
		t.Fatalf("expected 6 guesses, got %v", parsed.Results[0].Guesses)
	}
}

func TestParseSkipsOutOfRangeScores(t *testing.T) {
	content := "**Your group is on a 3 day streak!** 🔥 Here are yesterday's results:\n7/6: <@1>\n0/6: <@2>"
	if got := ParseAnnouncement(content); got != nil {
		t.Fatalf("expected nil for out-of-range scores, got %#v", got)
	}
}
