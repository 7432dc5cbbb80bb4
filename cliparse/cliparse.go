// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quadratic-vote/election"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string

	MaxCredits          int
	MaxVotesPerCast     int
	ConvenientWinners   int
	ApprovedCommunities []string

	// PrintAdminKey, when set, names a community whose admin key should be
	// printed instead of starting the server.
	PrintAdminKey string
}

// Ledger returns the credit settings for new elections.
func (c Config) Ledger() election.LedgerConfig {
	return election.LedgerConfig{
		MaxCredits:      c.MaxCredits,
		MaxVotesPerCast: c.MaxVotesPerCast,
	}
}

// LoadEnv reads .env files into the process environment. Variables that are
// already set win, and missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var communities string

	fs := flag.NewFlagSet("quadratic-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	// Election rules
	fs.IntVar(&cfg.MaxCredits, "max-credits", 0, "Voice credits per actor per election")
	fs.IntVar(&cfg.MaxVotesPerCast, "max-votes", 0, "Maximum votes in a single cast")
	fs.IntVar(&cfg.ConvenientWinners, "winners", 0, "Number of leading proposals shown in standings")
	fs.StringVar(&communities, "communities", "", "Comma-separated approved community IDs (empty: any)")

	fs.StringVar(&cfg.PrintAdminKey, "print-admin-key", "", "Print the admin key for a community and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if cfg.Port, err = intSetting(cfg.Port, "PORT", 3318); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:quadratic-vote.db"
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.MaxCredits, err = intSetting(cfg.MaxCredits, "MAX_CREDITS", election.DefaultMaxCredits); err != nil {
		return Config{}, err
	}
	if cfg.MaxVotesPerCast, err = intSetting(cfg.MaxVotesPerCast, "MAX_VOTES_PER_CAST", election.DefaultMaxVotesPerCast); err != nil {
		return Config{}, err
	}
	if cfg.ConvenientWinners, err = intSetting(cfg.ConvenientWinners, "CONVENIENT_WINNERS", 5); err != nil {
		return Config{}, err
	}
	if cfg.MaxCredits <= 0 || cfg.MaxVotesPerCast <= 0 || cfg.ConvenientWinners <= 0 {
		return Config{}, errors.New("max credits, max votes and winners must be positive")
	}

	if communities == "" {
		communities = os.Getenv("APPROVED_COMMUNITIES")
	}
	for _, id := range strings.Split(communities, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.ApprovedCommunities = append(cfg.ApprovedCommunities, id)
		}
	}

	return cfg, nil
}

// intSetting keeps a non-zero flag value, else reads env, else uses def.
func intSetting(flagValue int, env string, def int) (int, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return v, nil
}
