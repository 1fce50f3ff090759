package cli

import (
	"context"
	"testing"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{"announce": false, "serve": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("CHANNEL_ID", "12345")
	t.Setenv("LOOKAHEAD_DAYS", "7")

	cmd := newAnnounceCmd()
	if err := cmd.Flags().Set("days", "3"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("max-events", "10"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("feed-url", "http://localhost:9999"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(context.Background(), cmd)
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}

	if cfg.LookaheadDays != 3 {
		t.Errorf("LookaheadDays = %d, want flag override 3", cfg.LookaheadDays)
	}
	if cfg.MaxEvents != 10 {
		t.Errorf("MaxEvents = %d, want flag override 10", cfg.MaxEvents)
	}
	if cfg.FeedURL != "http://localhost:9999" {
		t.Errorf("FeedURL = %q, want flag override", cfg.FeedURL)
	}
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("CHANNEL_ID", "12345")

	cmd := newAnnounceCmd()

	cfg, err := loadConfig(context.Background(), cmd)
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}

	if cfg.LookaheadDays != 7 {
		t.Errorf("LookaheadDays = %d, want default 7", cfg.LookaheadDays)
	}
	if cfg.BotToken != "test-token" {
		t.Errorf("BotToken = %q, want env value", cfg.BotToken)
	}
}
