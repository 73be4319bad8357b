// Command resolve is a one-shot probe: it lists the configured file host,
// reports which dated file would serve a lookup right now and optionally
// runs a single lookup, printing the result as text.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jdewael/steekkaart-backend/internal/adapters/listing"
	"github.com/jdewael/steekkaart-backend/internal/application/roster"
	"github.com/jdewael/steekkaart-backend/internal/domain/datedfile"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/config"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/logging"
)

func main() {
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		dir        = flag.String("dir", "", "Resolve against a local directory instead of the configured host")
		date       = flag.String("date", "", "Resolve the file for an exact date (YYYYMMDD) instead of the most-recent policy")
		number     = flag.String("number", "", "Look up a personnel number")
		code       = flag.String("code", "", "Look up a vehicle code")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configFile)
	if *dir != "" {
		cfg.Source.Kind = "dir"
		cfg.Source.Dir = *dir
	}

	logLevel := "warn"
	if *verbose {
		logLevel = "debug"
	}

	if err := run(cfg, *date, *number, *code, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, date, number, code, logLevel string) error {
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rosterCfg := roster.DefaultConfig()
	if cfg.Roster.Sheet != "" {
		rosterCfg.Sheet = cfg.Roster.Sheet
	}
	rosterCfg.ScanAnywhere = cfg.Roster.ScanAnywhere
	rosterCfg.CacheTTL = 0 // one-shot, no point caching
	svc := roster.New(rosterCfg, source, nil, logging.NewLoggerWithSystem(logLevel, "roster"))

	fmt.Println("source:      ", source.Name())

	if date != "" {
		return resolveExact(ctx, source, date, rosterCfg.ScanAnywhere)
	}

	cur, err := svc.CurrentFile(ctx)
	if err != nil {
		return err
	}
	if cur.Found {
		fmt.Println("current file:", cur.Filename, "("+datedfile.Stamp(cur.Date)+")")
	} else {
		fmt.Println("current file: none usable up to today")
	}

	switch {
	case number != "":
		res, err := svc.SearchPersonnel(ctx, number)
		if err != nil {
			return err
		}
		printResult(res)
	case code != "":
		res, err := svc.SearchVehicle(ctx, code)
		if err != nil {
			return err
		}
		printResult(res)
	}
	return nil
}

// resolveExact lists the host and prints the file that exactly matches the
// requested date stamp.
func resolveExact(ctx context.Context, source listing.Source, stamp string, scanAnywhere bool) error {
	target, err := time.Parse("20060102", stamp)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYYMMDD", stamp)
	}

	names, err := source.List(ctx)
	if err != nil {
		return err
	}

	opts := datedfile.ExtractOptions{ScanAnywhere: scanAnywhere}
	candidates := datedfile.Filter(names, nil, opts)
	name, ok := datedfile.SelectExact(candidates, target)
	if !ok {
		fmt.Printf("file for %s: not found (%d dated candidates)\n", stamp, len(candidates))
		return nil
	}
	fmt.Printf("file for %s: %s\n", stamp, name)
	return nil
}

func printResult(res *roster.SearchResult) {
	fmt.Printf("query %q (%s): %d hit(s)\n", res.Query, res.Mode, res.Hits)
	for _, day := range res.Days {
		status := day.Filename
		if !day.FileFound {
			status = "no file"
		}
		fmt.Printf("  %-9s %s  %s\n", day.Label, day.Date.Format("2006-01-02"), status)
		for _, row := range day.Rows {
			fmt.Printf("    %s  %s  %s  %s -> %s  (%s / %s)\n",
				row[roster.ColPersonnel], row[roster.ColName], row[roster.ColHour],
				row[roster.ColPlace], row[roster.ColDirection],
				row[roster.ColVehicle], row[roster.ColRun])
		}
	}
}

// buildSource picks the file host from config.
func buildSource(cfg *config.Config) (listing.Source, error) {
	switch cfg.Source.Kind {
	case "dir":
		if cfg.Source.Dir == "" {
			return nil, fmt.Errorf("source kind 'dir' requires a directory")
		}
		return listing.NewDirSource(cfg.Source.Dir), nil
	case "", "ftp":
		if cfg.FTP.Host == "" {
			return nil, fmt.Errorf("FTP host is not configured")
		}
		return listing.NewFTPSource(listing.FTPConfig{
			Host:     cfg.FTP.Host,
			Port:     cfg.FTP.Port,
			User:     cfg.FTP.User,
			Password: cfg.FTP.Password,
			Dir:      cfg.FTP.Dir,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
