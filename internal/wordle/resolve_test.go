package wordle

import (
	"errors"
	"testing"
	"time"
)

type fakeRoster struct {
	names map[string]string
	err   error
	calls int
}

func (f *fakeRoster) DisplayName(guildID, userID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.names[userID], nil
}

type fakeFinder struct {
	playerID string
	found    bool
	err      error
	gotName  string
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeFinder) RecentPlayerByName(guildID, name string, start, end time.Time) (string, bool, error) {
	f.gotName = name
	f.gotStart = start
	f.gotEnd = end
	return f.playerID, f.found, f.err
}

func intPtr(n int) *int { return &n }

func TestResolveHardReferenceKeepsKey(t *testing.T) {
	roster := &fakeRoster{names: map[string]string{"111": "Ada"}}
	resolver := NewResolver(roster, &fakeFinder{}, 7*24*time.Hour)

	resolved := resolver.Resolve("g1", []TentativeResult{
		{Kind: RefUser, UserID: "111", Guesses: intPtr(3)},
	})
	if len(resolved) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resolved))
	}
	if resolved[0].PlayerID == nil || *resolved[0].PlayerID != "111" {
		t.Fatalf("expected player 111, got %v", resolved[0].PlayerID)
	}
	if resolved[0].Name != "Ada" {
		t.Fatalf("expected display name Ada, got %q", resolved[0].Name)
	}
}

func TestResolveDepartedMemberKeepsKey(t *testing.T) {
	roster := &fakeRoster{err: ErrMemberNotFound}
	resolver := NewResolver(roster, &fakeFinder{}, 7*24*time.Hour)

	resolved := resolver.Resolve("g1", []TentativeResult{
		{Kind: RefUser, UserID: "111", Guesses: intPtr(4)},
	})
	if resolved[0].PlayerID == nil || *resolved[0].PlayerID != "111" {
		t.Fatalf("expected the mention ID to survive a departed member, got %v", resolved[0].PlayerID)
	}
	if resolved[0].Name != "" {
		t.Fatalf("expected empty name, got %q", resolved[0].Name)
	}
}

func TestResolveRosterErrorDegradesToKeyOnly(t *testing.T) {
	roster := &fakeRoster{err: errors.New("rate limited")}
	resolver := NewResolver(roster, &fakeFinder{}, 7*24*time.Hour)

	resolved := resolver.Resolve("g1", []TentativeResult{
		{Kind: RefUser, UserID: "222"},
	})
	if resolved[0].PlayerID == nil || *resolved[0].PlayerID != "222" {
		t.Fatalf("expected player 222 despite lookup failure, got %v", resolved[0].PlayerID)
	}
}

func TestResolveFallbackNameMatched(t *testing.T) {
	finder := &fakeFinder{playerID: "999", found: true}
	resolver := NewResolver(&fakeRoster{}, finder, 7*24*time.Hour)

	resolved := resolver.Resolve("g1", []TentativeResult{
		{Kind: RefName, Name: "Some User", Guesses: intPtr(2)},
	})
	if resolved[0].PlayerID == nil || *resolved[0].PlayerID != "999" {
		t.Fatalf("expected adopted player 999, got %v", resolved[0].PlayerID)
	}
	if resolved[0].Name != "Some User" {
		t.Fatalf("expected name retained, got %q", resolved[0].Name)
	}
	if finder.gotName != "Some User" {
		t.Fatalf("expected search for Some User, got %q", finder.gotName)
	}
}

func TestResolveFallbackNameUnmatched(t *testing.T) {
	resolver := NewResolver(&fakeRoster{}, &fakeFinder{}, 7*24*time.Hour)

	resolved := resolver.Resolve("g1", []TentativeResult{
		{Kind: RefName, Name: "Ghost"},
	})
	if resolved[0].PlayerID != nil {
		t.Fatalf("expected nil player key, got %q", *resolved[0].PlayerID)
	}
	if resolved[0].Name != "Ghost" {
		t.Fatalf("expected name retained, got %q", resolved[0].Name)
	}
}

func TestResolveFallbackSearchErrorIsNonFatal(t *testing.T) {
	finder := &fakeFinder{err: errors.New("db down")}
	resolver := NewResolver(&fakeRoster{}, finder, 7*24*time.Hour)

	resolved := resolver.Resolve("g1", []TentativeResult{
		{Kind: RefName, Name: "Ghost"},
	})
	if len(resolved) != 1 || resolved[0].PlayerID != nil {
		t.Fatalf("expected degraded name-only result, got %#v", resolved)
	}
}

func TestResolveSearchWindowIsSymmetric(t *testing.T) {
	finder := &fakeFinder{}
	window := 7 * 24 * time.Hour
	resolver := NewResolver(&fakeRoster{}, finder, window)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	resolver.now = func() time.Time { return now }

	resolver.Resolve("g1", []TentativeResult{{Kind: RefName, Name: "Ada"}})
	if !finder.gotStart.Equal(now.Add(-window)) {
		t.Fatalf("expected window start %v, got %v", now.Add(-window), finder.gotStart)
	}
	if !finder.gotEnd.Equal(now.Add(window)) {
		t.Fatalf("expected window end %v, got %v", now.Add(window), finder.gotEnd)
	}
}
