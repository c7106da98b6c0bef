package bot

import (
	"testing"
	"time"
)

func TestSnowflakeAt(t *testing.T) {
	epoch := time.UnixMilli(discordEpochMillis)
	if got := snowflakeAt(epoch); got != "0" {
		t.Fatalf("expected 0 at the Discord epoch, got %s", got)
	}
	if got := snowflakeAt(epoch.Add(time.Second)); got != "4194304000" {
		t.Fatalf("expected 4194304000 one second after the epoch, got %s", got)
	}
	if got := snowflakeAt(epoch.Add(-time.Hour)); got != "0" {
		t.Fatalf("expected pre-epoch times to clamp to 0, got %s", got)
	}
}
