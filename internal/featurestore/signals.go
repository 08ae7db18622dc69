package featurestore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// SignalRecord is one row of the external signals table (weather, trends,
// holidays). Signals feed the explainability summary, not the forecast models.
type SignalRecord struct {
	Date     domain.Date
	Location string
	Values   map[string]float64
}

// LoadSignals reads the external signals dataset, preferring an uploaded file
// over the bundled sample. A missing dataset returns an empty slice.
func (l *Loader) LoadSignals() ([]SignalRecord, error) {
	path := filepath.Join(l.uploadDir, "external_signals.csv")
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(l.dataDir, "sample_external_signals.csv")
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open signals dataset %s: %w", path, err)
	}
	defer f.Close()

	return parseSignalsCSV(f)
}

func parseSignalsCSV(r io.Reader) ([]SignalRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read signals header: %w", err)
	}

	dateCol, locationCol := -1, -1
	for i, h := range header {
		switch normalizeColumn(h) {
		case "date":
			dateCol = i
		case "location":
			locationCol = i
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("signals dataset is missing a date column")
	}

	var records []SignalRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read signals row: %w", err)
		}

		date, derr := parseFlexibleDate(row[dateCol])
		if derr != nil {
			continue
		}

		rec := SignalRecord{Date: date, Values: make(map[string]float64)}
		if locationCol >= 0 {
			rec.Location = strings.TrimSpace(row[locationCol])
		}
		for i, h := range header {
			if i == dateCol || i == locationCol {
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64); err == nil {
				rec.Values[normalizeColumn(h)] = v
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// SummarizeSignals renders a short plain-text digest of the recent external
// signals, scoped to a location when one is given. Returns "" when there is
// nothing to report.
func (l *Loader) SummarizeSignals(location string, days int) string {
	records, err := l.LoadSignals()
	if err != nil || len(records) == 0 {
		return ""
	}

	if location != "" {
		var scoped []SignalRecord
		for _, r := range records {
			if r.Location == location {
				scoped = append(scoped, r)
			}
		}
		records = scoped
	}
	if len(records) == 0 {
		return ""
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	cutoff := records[len(records)-1].Date.AddDays(-days)
	recent := records
	for i, r := range records {
		if !r.Date.Before(cutoff) {
			recent = records[i:]
			break
		}
	}

	var parts []string

	if first, lastVal, ok := firstLastSignal(recent, "googletrendsindex"); ok {
		changePct := 0.0
		if first > 0 {
			changePct = (lastVal - first) / first * 100.0
		}
		parts = append(parts, fmt.Sprintf(
			"Google search interest moved from %.0f to %.0f over the last %d days (%+.1f%% change).",
			first, lastVal, days, changePct))
	}

	if minTemp, maxTemp, ok := minMaxSignal(recent, "temperature"); ok {
		parts = append(parts, fmt.Sprintf(
			"Observed temperature range in the same window: %.1f-%.1f°C.", minTemp, maxTemp))
	}

	holidays := 0.0
	for _, r := range recent {
		holidays += r.Values["isholiday"]
	}
	if holidays > 0 {
		parts = append(parts, "Recent days include holidays, which may drive demand peaks.")
	}

	return strings.Join(parts, " ")
}

func firstLastSignal(records []SignalRecord, key string) (first, last float64, ok bool) {
	found := false
	for _, r := range records {
		if v, has := r.Values[key]; has {
			if !found {
				first = v
				found = true
			}
			last = v
		}
	}
	return first, last, found
}

func minMaxSignal(records []SignalRecord, key string) (minV, maxV float64, ok bool) {
	found := false
	for _, r := range records {
		if v, has := r.Values[key]; has {
			if !found {
				minV, maxV = v, v
				found = true
				continue
			}
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	return minV, maxV, found
}
