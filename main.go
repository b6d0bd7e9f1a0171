package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"

	"github.com/openballot/rcvtally/cliparse"
	"github.com/openballot/rcvtally/db"
	"github.com/openballot/rcvtally/formats"
	"github.com/openballot/rcvtally/meta"
	"github.com/openballot/rcvtally/models"
	"github.com/openballot/rcvtally/report"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: rcvtally <report|extract> [flags]")
		os.Exit(2)
	}
	command := os.Args[1]

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[2:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctx, cancel := context.WithCancel(context.Background())
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
	}()

	switch command {
	case "report":
		err = runReport(ctx, cfg)
	case "extract":
		err = runExtract(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want report or extract)\n", command)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

// runReport generates reports for every contest the metadata describes
// and optionally stores each report in the configured database.
func runReport(ctx context.Context, cfg cliparse.Config) error {
	index, err := report.Run(ctx, report.Options{
		MetaDir:         cfg.MetaDir,
		RawDir:          cfg.RawDir,
		ReportDir:       cfg.ReportDir,
		PreprocessedDir: cfg.PreprocessedDir,
		Jurisdiction:    cfg.Jurisdiction,
		ForcePreprocess: cfg.ForcePreprocess,
		ForceReport:     cfg.ForceReport,
		Workers:         cfg.Workers,
	})
	if err != nil {
		return err
	}
	slog.Info("Report run complete", "elections", len(index.Elections))

	if cfg.DatabaseURL == "" {
		return nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return err
	}

	for _, election := range index.Elections {
		for _, contest := range election.Contests {
			path := filepath.Join(cfg.ReportDir, filepath.FromSlash(election.Path), contest.Office, "report.json")
			var r models.ContestReport
			if err := report.ReadJSON(path, &r); err != nil {
				return fmt.Errorf("reading report %s: %w", path, err)
			}
			id, err := db.WriteReport(conn, r)
			if err != nil {
				return fmt.Errorf("storing report %s: %w", path, err)
			}
			slog.Info("Stored report", "path", path, "snapshot", id)
		}
	}
	return nil
}

// runExtract loads the raw ballots of every NIST SP 1500-103 contest and
// stores them in the extraction tables for ad-hoc SQL analysis.
func runExtract(cfg cliparse.Config) error {
	jurisdictions, err := meta.ReadMetadata(cfg.MetaDir)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return err
	}

	for _, j := range jurisdictions {
		if cfg.Jurisdiction != "" && j.Path != cfg.Jurisdiction {
			continue
		}
		electionPaths := make([]string, 0, len(j.Elections))
		for p := range j.Elections {
			electionPaths = append(electionPaths, p)
		}
		sort.Strings(electionPaths)

		for _, electionPath := range electionPaths {
			election := j.Elections[electionPath]
			if election.DataFormat != "nist_sp_1500" {
				continue
			}
			for _, contest := range election.Contests {
				contestID, err := strconv.Atoi(contest.LoaderParams["contest"])
				if err != nil {
					return fmt.Errorf("contest %s/%s/%s: bad contest id: %w",
						j.Path, electionPath, contest.Office, err)
				}
				raw := filepath.Join(cfg.RawDir, j.Path, electionPath)
				e, err := formats.Read(election.DataFormat, raw, contest.LoaderParams)
				if err != nil {
					return fmt.Errorf("reading contest %s/%s/%s: %w",
						j.Path, electionPath, contest.Office, err)
				}
				officeName := j.Offices[contest.Office].Name
				if err := db.ExtractElection(conn, contestID, officeName, electionPath, e); err != nil {
					return err
				}
				slog.Info("Extracted contest",
					"jurisdiction", j.Path, "election", electionPath,
					"office", contest.Office, "ballots", len(e.Ballots))
			}
		}
	}
	return nil
}
