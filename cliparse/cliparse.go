package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/danielhkuo/rankboard/ledger"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	MergePolicy  string
	AutoRegister bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("rankboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Merge behavior (prefer env in deployments, but allow CLI for dev)
	fs.StringVar(&cfg.MergePolicy, "merge", "", "Merge policy (best, latest, or accumulate)")
	autoRegister := fs.String("auto-register", "", "Create unknown players on submission (true or false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "sqlite" {
			cfg.DatabaseURL = "file:rankboard.db"
		} else {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	// Merge policy decides how repeat submissions combine; it must be
	// explicit per deployment and never mixed at runtime
	if cfg.MergePolicy == "" {
		cfg.MergePolicy = os.Getenv("MERGE_POLICY")
		if cfg.MergePolicy == "" {
			cfg.MergePolicy = string(ledger.PolicyBest)
		}
	}
	if !ledger.ValidPolicy(cfg.MergePolicy) {
		return Config{}, errors.New("merge policy must be best, latest, or accumulate")
	}

	if *autoRegister == "" {
		*autoRegister = os.Getenv("AUTO_REGISTER")
	}
	if *autoRegister == "" {
		cfg.AutoRegister = true
	} else {
		v, err := strconv.ParseBool(*autoRegister)
		if err != nil {
			return Config{}, errors.New("auto-register must be true or false")
		}
		cfg.AutoRegister = v
	}

	return cfg, nil
}
