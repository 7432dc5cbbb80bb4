// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("MAX_CREDITS", "49")
	t.Setenv("MAX_VOTES_PER_CAST", "5")
	t.Setenv("APPROVED_COMMUNITIES", "guild-1, guild-2,,")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database settings %q %q", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.MaxCredits != 49 || cfg.MaxVotesPerCast != 5 {
		t.Errorf("expected 49/5, got %d/%d", cfg.MaxCredits, cfg.MaxVotesPerCast)
	}
	if len(cfg.ApprovedCommunities) != 2 || cfg.ApprovedCommunities[1] != "guild-2" {
		t.Errorf("unexpected communities %v", cfg.ApprovedCommunities)
	}
	if cfg.Ledger().VoteLimit() != 5 {
		t.Errorf("expected vote limit 5, got %d", cfg.Ledger().VoteLimit())
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_CREDITS", "50")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-max-credits", "400", "-winners", "3"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.MaxCredits != 400 {
		t.Errorf("CLI should override env: expected 400, got %d", cfg.MaxCredits)
	}
	if cfg.ConvenientWinners != 3 {
		t.Errorf("expected 3 winners, got %d", cfg.ConvenientWinners)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("ADMIN_KEY_SALT", "s")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("PORT", "")
	t.Setenv("MAX_CREDITS", "")
	t.Setenv("MAX_VOTES_PER_CAST", "")
	t.Setenv("CONVENIENT_WINNERS", "")
	t.Setenv("APPROVED_COMMUNITIES", "")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 3318 || cfg.DatabaseType != DatabaseSQLite || cfg.DatabaseURL != "file:quadratic-vote.db" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxCredits != 100 || cfg.MaxVotesPerCast != 10 || cfg.ConvenientWinners != 5 {
		t.Errorf("unexpected election defaults %+v", cfg)
	}
	if cfg.ApprovedCommunities != nil {
		t.Errorf("expected no whitelist, got %v", cfg.ApprovedCommunities)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", map[string]string{"ADMIN_KEY_SALT": ""}, nil},
		{"postgres without url", map[string]string{"ADMIN_KEY_SALT": "s", "DATABASE_URL": ""}, []string{"-t", "postgres"}},
		{"unknown database", map[string]string{"ADMIN_KEY_SALT": "s"}, []string{"-t", "mysql"}},
		{"bad port", map[string]string{"ADMIN_KEY_SALT": "s", "PORT": "abc"}, nil},
		{"bad credits", map[string]string{"ADMIN_KEY_SALT": "s", "MAX_CREDITS": "lots"}, nil},
		{"negative votes", map[string]string{"ADMIN_KEY_SALT": "s"}, []string{"-max-votes", "-3"}},
		{"unknown flag", map[string]string{"ADMIN_KEY_SALT": "s"}, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ADMIN_KEY_SALT=from-file\nMAX_CREDITS=64\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ADMIN_KEY_SALT", "")
	os.Unsetenv("ADMIN_KEY_SALT")
	t.Setenv("MAX_CREDITS", "81")

	if err := LoadEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AdminKeySalt != "from-file" {
		t.Errorf("expected salt from .env, got %q", cfg.AdminKeySalt)
	}
	if cfg.MaxCredits != 81 {
		t.Errorf("process env should win over .env: got %d", cfg.MaxCredits)
	}
}

func TestLoadEnv_NoFiles(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing files should be ignored: %v", err)
	}
}
