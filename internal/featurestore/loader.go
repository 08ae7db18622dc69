package featurestore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// SalesRecord is one raw row of the merged sales table.
type SalesRecord struct {
	Date     domain.Date
	SKU      string
	Location string
	Quantity float64
}

// Loader reads the sales dataset from the upload directory, falling back to the
// bundled sample dataset. Uploaded XLSX workbooks are converted to CSV first.
type Loader struct {
	uploadDir string
	dataDir   string
}

func NewLoader(uploadDir, dataDir string) *Loader {
	return &Loader{uploadDir: uploadDir, dataDir: dataDir}
}

// LoadSales reads and parses the sales table. Column names are matched
// heuristically so slightly different schemas (e.g. Product/Region/Date/Qty)
// still load. Missing sku or location columns collapse to a single pseudo group.
func (l *Loader) LoadSales() ([]SalesRecord, error) {
	path, err := l.resolveSalesPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sales dataset %s: %w", path, err)
	}
	defer f.Close()

	return parseSalesCSV(f)
}

func (l *Loader) resolveSalesPath() (string, error) {
	uploaded := filepath.Join(l.uploadDir, "sales.csv")
	uploadedXLSX := filepath.Join(l.uploadDir, "sales.xlsx")

	if _, err := os.Stat(uploaded); err == nil {
		return uploaded, nil
	}
	if _, err := os.Stat(uploadedXLSX); err == nil {
		if err := convertXLSXToCSV(uploadedXLSX, uploaded); err != nil {
			return "", err
		}
		return uploaded, nil
	}

	sample := filepath.Join(l.dataDir, "sample_sales.csv")
	if _, err := os.Stat(sample); err == nil {
		return sample, nil
	}

	return "", fmt.Errorf("no sales dataset found in %s or %s", l.uploadDir, l.dataDir)
}

func parseSalesCSV(r io.Reader) ([]SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read sales header: %w", err)
	}

	dateCol := guessColumn(header, []string{"date", "order_date", "orderdate"})
	skuCol := guessColumn(header, []string{"sku", "product", "item", "product_id", "productid"})
	locationCol := guessColumn(header, []string{"location", "region", "store", "warehouse", "country"})
	qtyCol := guessColumn(header, []string{"quantity", "qty", "units", "orderquantity", "order_qty"})

	if dateCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("sales dataset is missing a usable date or quantity column")
	}

	var (
		records []SalesRecord
		skipped int
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sales row: %w", err)
		}

		date, derr := parseFlexibleDate(row[dateCol])
		qty, qerr := strconv.ParseFloat(strings.TrimSpace(row[qtyCol]), 64)
		if derr != nil || qerr != nil {
			skipped++
			continue
		}

		rec := SalesRecord{Date: date, Quantity: qty, SKU: "ALL-SKU", Location: "ALL-LOC"}
		if skuCol >= 0 {
			rec.SKU = strings.TrimSpace(row[skuCol])
		}
		if locationCol >= 0 {
			rec.Location = strings.TrimSpace(row[locationCol])
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("sales dataset: skipped unparsable rows")
	}

	return records, nil
}

// guessColumn finds the index of the first header matching one of the candidate
// names, comparing normalized forms; falls back to substring matching.
func guessColumn(header []string, candidates []string) int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeColumn(h)
	}

	for _, cand := range candidates {
		key := normalizeColumn(cand)
		for i, norm := range normalized {
			if norm == key {
				return i
			}
		}
	}
	for _, cand := range candidates {
		key := normalizeColumn(cand)
		for i, norm := range normalized {
			if strings.Contains(norm, key) {
				return i
			}
		}
	}
	return -1
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	return strings.ReplaceAll(name, "_", "")
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
}

func parseFlexibleDate(s string) (domain.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), nil
		}
	}
	return domain.Date{}, fmt.Errorf("unparsable date %q", s)
}
