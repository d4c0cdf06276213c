package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// ReportRow is one run's line in a report.
type ReportRow struct {
	Algorithm string
	Trial     int
	Seed      int64
	Stats     Stats
}

// WriteCSVReport writes a CSV report to the given path or directory.
// If reportPath is a directory, it creates a timestamped file inside.
// If reportPath is a file, a timestamp is suffixed before the extension.
func WriteCSVReport(reportPath string, rows []ReportRow) (string, error) {
	if reportPath == "" {
		return "", nil
	}
	ts := time.Now().Format("20060102-150405")
	outPath := reportPath
	if fi, err := os.Stat(outPath); err == nil && fi.IsDir() {
		outPath = filepath.Join(outPath, fmt.Sprintf("report-%s.csv", ts))
	} else {
		ext := filepath.Ext(outPath)
		base := outPath[:len(outPath)-len(ext)]
		outPath = fmt.Sprintf("%s-%s%s", base, ts, ext)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := writeCSVRows(f, rows, ts); err != nil {
		f.Close()
		return "", fmt.Errorf("write report %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	log.Info().Str("path", outPath).Int("rows", len(rows)).Msg("CSV report written")
	return outPath, nil
}

var reportHeader = []string{"algorithm", "trial", "seed", "num_iterations", "total_people",
	"people_completed", "min_time", "max_time", "avg_time", "timestamp"}

func writeCSVRows(w io.Writer, rows []ReportRow, ts string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		s := r.Stats
		rec := []string{r.Algorithm, strconv.Itoa(r.Trial), strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(s.NumIterations), strconv.Itoa(s.TotalPeople), strconv.Itoa(s.PeopleCompleted),
			strconv.Itoa(s.MinTime), strconv.Itoa(s.MaxTime), strconv.Itoa(s.AvgTime), ts}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrintConsoleReport prints a human-readable report.
func PrintConsoleReport(w io.Writer, rows []ReportRow) {
	fmt.Fprintln(w, "=== Simulation Report ===")
	fmt.Fprintf(w, "Runs: %d\n", len(rows))
	for _, r := range rows {
		s := r.Stats
		fmt.Fprintf(w, "%s trial %d (seed %d): rounds=%d people=%d completed=%d",
			r.Algorithm, r.Trial, r.Seed, s.NumIterations, s.TotalPeople, s.PeopleCompleted)
		if s.PeopleCompleted == 0 {
			fmt.Fprintln(w, " wait=n/a")
			continue
		}
		fmt.Fprintf(w, " wait min=%d avg=%d max=%d\n", s.MinTime, s.AvgTime, s.MaxTime)
	}
}
