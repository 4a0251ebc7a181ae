// Package recorder appends run history rows to a flat CSV file. Recording
// is best-effort: by the time a row is written the calculation has already
// been delivered, so failures are skipped, never fatal.
package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/srahimian/huquq/internal/metal"
	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/datetime"
)

// Row is one run's record: when it ran, the moment it priced against, the
// resolved observation, and the headline numbers.
type Row struct {
	RunTime     time.Time
	TargetTime  time.Time
	Observation metal.Observation
	Wealth      float64
	Payable     float64
}

// Recorder persists run rows.
type Recorder interface {
	Record(row Row) error
}

// CSVRecorder appends rows to a CSV file.
type CSVRecorder struct {
	Path   string
	logger *zap.Logger
}

// NewCSVRecorder creates a recorder writing to the given path.
func NewCSVRecorder(path string, logger *zap.Logger) *CSVRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVRecorder{Path: path, logger: logger}
}

// Record appends one row. A missing parent directory or unopenable file is
// logged and skipped rather than surfaced.
func (r *CSVRecorder) Record(row Row) error {
	if dir := filepath.Dir(r.Path); dir != "." {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			r.logger.Debug("record directory missing, skipping record",
				zap.String("op", "recorder.CSVRecorder.Record"),
				zap.String("path", r.Path),
			)
			return nil
		}
	}

	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		r.logger.Debug("could not open record file, skipping record",
			zap.String("op", "recorder.CSVRecorder.Record"),
			zap.String("path", r.Path),
			zap.Error(err),
		)
		return nil
	}
	defer f.Close()

	w := csv.NewWriter(f)
	o := row.Observation
	err = w.Write([]string{
		row.RunTime.Format(constants.DateTimeDisplayLayout),
		row.TargetTime.Format(constants.DateTimeDisplayLayout),
		datetime.FromEpochMillis(o.Timestamp).Format(constants.DateTimeDisplayLayout),
		fmt.Sprintf("%.2f", o.Price),
		o.Unit,
		o.Currency,
		o.Source,
		fmt.Sprintf("%.2f", row.Wealth),
		fmt.Sprintf("%.2f", row.Payable),
	})
	if err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
