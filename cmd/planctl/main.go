package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ibp-ai/planning-engine/internal/config"
	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/featurestore"
	"github.com/ibp-ai/planning-engine/internal/forecast"
	"github.com/ibp-ai/planning-engine/internal/storage"
	"github.com/ibp-ai/planning-engine/pkg/logger"
)

func newLoaderFromFlags(c *cli.Context) *featurestore.Loader {
	return featurestore.NewLoader(c.String("upload-dir"), c.String("data-dir"))
}

func dataDirFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "upload-dir",
			Usage:   "Directory holding uploaded datasets",
			Value:   "./data/uploads",
			EnvVars: []string{"APP_UPLOAD_DIR"},
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "Directory holding bundled sample datasets",
			Value:   "./data",
			EnvVars: []string{"APP_DATA_DIR"},
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "planctl",
		Usage: "Offline utilities for the forecast and supply planning engine",
		Commands: []*cli.Command{
			{
				Name:   "baseline",
				Usage:  "Compute the naive mean baseline and its MAPE over daily sales totals",
				Flags:  dataDirFlags(),
				Action: runBaseline,
			},
			{
				Name:  "fetch",
				Usage: "Download datasets from object storage into the upload directory",
				Flags: append(dataDirFlags(),
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Object key prefix to download",
					},
				),
				Action: runFetch,
			},
			{
				Name:  "forecast",
				Usage: "Run an offline forecast against the local feature store and print the artifact",
				Flags: append(dataDirFlags(),
					&cli.StringSliceFlag{
						Name:     "sku",
						Usage:    "SKU to forecast (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "start",
						Usage:    "Horizon start date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "end",
						Usage:    "Horizon end date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "granularity",
						Usage: "Horizon spacing: day, week, or month",
						Value: "day",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Optional location filter for history extraction",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Force one model: arima, seasonal, boosted, or stub",
					},
				),
				Action: runForecast,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("planctl failed")
	}
}

// runBaseline mirrors the naive-mean training job: daily totals across all
// SKUs, the mean as the baseline predictor, and MAPE with actuals clipped to a
// lower bound of 1 to keep zero-sales days finite.
func runBaseline(c *cli.Context) error {
	loader := newLoaderFromFlags(c)
	records, err := loader.LoadSales()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("sales dataset is empty")
	}

	byDate := make(map[string]float64)
	for _, r := range records {
		byDate[r.Date.String()] += r.Quantity
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum float64
	for _, k := range keys {
		sum += byDate[k]
	}
	baseline := sum / float64(len(keys))

	var mapeSum float64
	for _, k := range keys {
		actual := byDate[k]
		denom := math.Max(actual, 1)
		mapeSum += math.Abs(actual-baseline) / denom
	}
	mape := mapeSum / float64(len(keys))

	return printJSON(map[string]any{
		"metric":        "naive_mape",
		"value":         mape,
		"baseline_mean": baseline,
		"days":          len(keys),
	})
}

func runFetch(c *cli.Context) error {
	cfg := config.Load()
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	ctx := context.Background()
	objects, err := client.ListObjects(ctx, c.String("prefix"))
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return fmt.Errorf("no objects found for prefix %q", c.String("prefix"))
	}

	uploadDir := c.String("upload-dir")
	for _, obj := range objects {
		dest := filepath.Join(uploadDir, filepath.Base(obj.Key))
		if err := client.DownloadObject(ctx, obj.Key, dest); err != nil {
			return err
		}
		logger.Log.Info().Str("key", obj.Key).Str("dest", dest).Int64("size", obj.Size).Msg("downloaded dataset")
	}
	return nil
}

func runForecast(c *cli.Context) error {
	start, err := domain.ParseDate(c.String("start"))
	if err != nil {
		return err
	}
	end, err := domain.ParseDate(c.String("end"))
	if err != nil {
		return err
	}

	granularity := domain.Granularity(c.String("granularity"))
	if !granularity.Valid() {
		return fmt.Errorf("granularity must be one of day, week, month")
	}

	loader := newLoaderFromFlags(c)
	engine := forecast.NewEngine(featurestore.NewCSVSource(loader), nil)

	result, err := engine.Generate(context.Background(), domain.ForecastRequest{
		SKUList:     c.StringSlice("sku"),
		StartDate:   start,
		EndDate:     end,
		Granularity: granularity,
		Location:    c.String("location"),
		ForcedModel: c.String("model"),
	})
	if err != nil {
		return err
	}

	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
