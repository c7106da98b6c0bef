package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	DiscordToken string
	// AnnouncerID is the Discord user ID of the official Wordle bot, the
	// only author whose messages enter the pipeline.
	AnnouncerID string
	// TestGuildID scopes slash-command registration to one guild when set.
	TestGuildID string

	BackfillProbeDays        int
	BackfillBatchDays        int
	BackfillMaxGapDays       int
	BackfillThrottleMillis   int
	NameMatchWindowDays      int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
}

func Default() Config {
	return Config{
		AnnouncerID:              "1211781489931452447",
		BackfillProbeDays:        7,
		BackfillBatchDays:        7,
		BackfillMaxGapDays:       30,
		BackfillThrottleMillis:   50,
		NameMatchWindowDays:      7,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	if raw := os.Getenv("WORDLE_ANNOUNCER_ID"); raw != "" {
		cfg.AnnouncerID = raw
	}
	if raw := os.Getenv("TEST_GUILD_ID"); raw != "" {
		cfg.TestGuildID = raw
	}
	if raw := os.Getenv("BACKFILL_PROBE_DAYS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.BackfillProbeDays = value
		}
	}
	if raw := os.Getenv("BACKFILL_BATCH_DAYS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.BackfillBatchDays = value
		}
	}
	if raw := os.Getenv("BACKFILL_MAX_GAP_DAYS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.BackfillMaxGapDays = value
		}
	}
	if raw := os.Getenv("BACKFILL_THROTTLE_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.BackfillThrottleMillis = value
		}
	}
	if raw := os.Getenv("NAME_MATCH_WINDOW_DAYS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.NameMatchWindowDays = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	return cfg
}
