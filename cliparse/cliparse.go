package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MetaDir         string
	RawDir          string
	ReportDir       string
	PreprocessedDir string

	Jurisdiction    string
	ForcePreprocess bool
	ForceReport     bool
	Workers         int

	DatabaseURL  string
	DatabaseType string
}

// ParseFlags validates flags and fills environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Optional .env for local development; absence is fine
	_ = godotenv.Load()

	fs := flag.NewFlagSet("rcvtally", flag.ContinueOnError)

	// Directories (can be CLI args or env)
	fs.StringVar(&cfg.MetaDir, "meta", "", "Election metadata directory")
	fs.StringVar(&cfg.RawDir, "raw", "", "Raw ballot data directory")
	fs.StringVar(&cfg.ReportDir, "reports", "", "Report output directory")
	fs.StringVar(&cfg.PreprocessedDir, "preprocessed", "", "Normalized ballot cache directory")

	// Run selection
	fs.StringVar(&cfg.Jurisdiction, "jurisdiction", "", "Restrict to one jurisdiction path (e.g. us/me)")
	fs.BoolVar(&cfg.ForcePreprocess, "force-preprocess", false, "Regenerate normalized ballot caches")
	fs.BoolVar(&cfg.ForceReport, "force-report", false, "Regenerate reports from cached ballots")
	fs.IntVar(&cfg.Workers, "workers", 0, "Concurrent jurisdiction workers")

	// Database (extract command)
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.MetaDir == "" {
		cfg.MetaDir = os.Getenv("META_DIR")
		if cfg.MetaDir == "" {
			cfg.MetaDir = "election-metadata"
		}
	}
	if cfg.RawDir == "" {
		cfg.RawDir = os.Getenv("RAW_DIR")
	}
	if cfg.RawDir == "" {
		return Config{}, errors.New("raw data directory required (use -raw or RAW_DIR env)")
	}

	if cfg.ReportDir == "" {
		cfg.ReportDir = os.Getenv("REPORT_DIR")
		if cfg.ReportDir == "" {
			cfg.ReportDir = "reports"
		}
	}
	if cfg.PreprocessedDir == "" {
		cfg.PreprocessedDir = os.Getenv("PREPROCESSED_DIR")
		if cfg.PreprocessedDir == "" {
			cfg.PreprocessedDir = "preprocessed"
		}
	}

	if cfg.Workers == 0 {
		if workersStr := os.Getenv("WORKERS"); workersStr != "" {
			workers, err := strconv.Atoi(workersStr)
			if err != nil {
				return Config{}, errors.New("invalid WORKERS env variable")
			}
			cfg.Workers = workers
		} else {
			cfg.Workers = 4 // default
		}
	}
	if cfg.Workers < 1 {
		return Config{}, errors.New("workers must be at least 1")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	return cfg, nil
}
