// Command reconcile merges two assessment-cycle CSV exports into the combined
// participant artifact consumed by the gateway's cold-cache fallback.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"fitrecon/internal/artifact"
	"fitrecon/internal/identity"
	"fitrecon/internal/merge"
	"fitrecon/internal/tabular"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fileA    = fs.String("cycle-a", "", "CSV export for the earlier assessment cycle (required)")
		fileB    = fs.String("cycle-b", "", "CSV export for the later assessment cycle (required)")
		labelA   = fs.String("label-a", "2024", "label for the earlier cycle")
		labelB   = fs.String("label-b", "2025", "label for the later cycle")
		location = fs.String("location", "CT Hub", "location recorded on every merged participant")
		out      = fs.String("out", artifact.DefaultFilesystemPath, "path of the combined artifact to write")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *fileA == "" || *fileB == "" {
		fmt.Fprintln(stderr, "reconcile: -cycle-a and -cycle-b are required")
		fs.Usage()
		return 2
	}

	if err := reconcile(*fileA, *labelA, *fileB, *labelB, *location, *out, stdout); err != nil {
		fmt.Fprintf(stderr, "reconcile: %v\n", err)
		return 1
	}
	return 0
}

func reconcile(fileA, labelA, fileB, labelB, location, out string, stdout io.Writer) error {
	rowsA, reportA, err := parseExport(fileA)
	if err != nil {
		return err
	}
	rowsB, reportB, err := parseExport(fileB)
	if err != nil {
		return err
	}

	merged := merge.Merge(rowsA, labelA, rowsB, labelB, location)
	records := merge.Records(merged)
	stats := merge.ComputeStats(records, labelA, labelB)

	dest := artifact.NewFilesystem(out)
	if err := dest.Write(context.Background(), records); err != nil {
		return fmt.Errorf("write artifact %s: %w", out, err)
	}

	fmt.Fprintf(stdout, "cycle %s: %d rows kept, %d dropped\n", labelA, reportA.Rows, reportA.Dropped)
	fmt.Fprintf(stdout, "cycle %s: %d rows kept, %d dropped\n", labelB, reportB.Rows, reportB.Dropped)
	fmt.Fprintf(stdout, "merged %d participants (%s only: %d, %s only: %d, both: %d)\n",
		stats.Total,
		labelA, stats.CycleACount-stats.BothCount,
		labelB, stats.CycleBCount-stats.BothCount,
		stats.BothCount)
	fmt.Fprintf(stdout, "artifact written to %s\n", dest.Path())
	return nil
}

func parseExport(path string) ([]tabular.Row, tabular.Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, tabular.Report{}, fmt.Errorf("read export %s: %w", path, err)
	}
	rows, report := tabular.Parse(string(b), identity.RequiredColumns)
	return rows, report, nil
}
