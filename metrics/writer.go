package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("runs", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteGrowthMetrics(records []GrowthMetric) error {
	// Create a file
	path := filepath.Join(w.baseDir, "growth_metrics.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create growth metrics file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"states", "slices", "duration", "exhausted"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write growth metrics header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.States),
			strconv.Itoa(record.Slices),
			record.Duration.String(),
			strconv.FormatBool(record.Exhausted),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write growth metrics row: %w", err)
		}
	}

	return nil
}
