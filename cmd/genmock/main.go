// Command genmock generates deterministic outage feed fixtures for the
// ingest and API test suites. It uses the actual domain parser so the
// transformed output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -count 200 \
//	  -raw-out data/mock/outage_feed_raw.json \
//	  -transformed-out data/mock/outage_feed_transformed.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/gridsight/outage-analytics/internal/analytics"
	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

// baseTime anchors the generated window so fixtures stay reproducible.
var baseTime = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

// zips is the subset of metro zip codes the generator draws from. Weighted
// toward the downtown core so worst-neighborhood rankings have a clear winner.
var zips = []string{
	"37201", "37201", "37201",
	"37203", "37203",
	"37205", "37206", "37207", "37208",
	"37210", "37211", "37214", "37216",
}

var causes = []string{"equipment", "weather", "vegetation", "vehicle", "unknown"}
var trends = []string{"worsening", "stable", "improving"}
var statuses = []string{"active", "Assigned", "restored"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	count := flag.Int("count", 200, "number of outage records to generate")
	seed := flag.Int64("seed", 42, "rng seed")
	rawOut := flag.String("raw-out", "", "output path for raw feed JSON fixture")
	transformedOut := flag.String("transformed-out", "", "output path for transformed JSON fixture")
	flag.Parse()

	if *rawOut == "" || *transformedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -transformed-out")
	}

	// Fix the clock so ProcessedAt timestamps are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(baseTime))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed))

	rawRecords := make([]domain.RawFeedRecord, 0, *count)
	transformed := make([]domain.OutageRecord, 0, *count)

	for i := 0; i < *count; i++ {
		raw := generate(rng)
		rawRecords = append(rawRecords, raw)

		value, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		rec, err := domain.ParseRawEvent(domain.RawEvent{Value: value, Timestamp: baseTime})
		if err != nil {
			return fmt.Errorf("parse raw event: %w", err)
		}
		transformed = append(transformed, rec)
	}

	log.Printf("total: %d records", len(rawRecords))

	if err := writeJSON(*rawOut, rawRecords); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*transformedOut, transformed); err != nil {
		return fmt.Errorf("writing transformed fixture: %w", err)
	}
	log.Printf("wrote transformed fixture: %s", *transformedOut)

	printStats(transformed)
	return nil
}

// generate produces one raw feed record within the 90 days before baseTime.
// Roughly one record in ten carries coordinates instead of a zip code, which
// exercises the reverse-geocode fallback path.
func generate(rng *rand.Rand) domain.RawFeedRecord {
	zip := zips[rng.Intn(len(zips))]
	start := baseTime.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
	duration := time.Duration(30+rng.Intn(300)) * time.Minute

	rec := domain.RawFeedRecord{
		ZipCode:         zip,
		StartTime:       start.UnixMilli(),
		LastUpdatedTime: start.Add(duration).UnixMilli(),
		NumPeople:       50 + rng.Intn(60000),
		Status:          statuses[rng.Intn(len(statuses))],
		Cause:           causes[rng.Intn(len(causes))],
		Trend:           trends[rng.Intn(len(trends))],
	}

	if rng.Intn(10) == 0 {
		entry, _ := geo.Lookup(zip)
		rec.ZipCode = ""
		rec.Latitude = entry.Lat
		rec.Longitude = entry.Lon
	}
	if rng.Intn(3) == 0 {
		rec.EstimatedETA = start.Add(duration + time.Duration(rng.Intn(240))*time.Minute).UnixMilli()
	}
	return rec
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type areaCount struct {
	zip   string
	count int
}

func printStats(records []domain.OutageRecord) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(records))

	zipCounts := map[string]int{}
	causeCounts := map[string]int{}
	var withCoords, withETA, large int
	for i := range records {
		r := &records[i]
		zipCounts[r.ZipCode]++
		causeCounts[r.Cause]++
		if r.HasCoordinates() {
			withCoords++
		}
		if !r.EstimatedETA.IsZero() {
			withETA++
		}
		if r.NumPeople >= 1000 {
			large++
		}
	}

	fmt.Printf("With coordinates: %d\n", withCoords)
	fmt.Printf("With ETA: %d\n", withETA)
	fmt.Printf("Alert-sized (>=1000 customers): %d\n", large)

	fmt.Print("By cause:")
	for _, c := range causes {
		fmt.Printf(" %s=%d", c, causeCounts[c])
	}
	fmt.Println()

	ac := make([]areaCount, 0, len(zipCounts))
	for z, c := range zipCounts {
		ac = append(ac, areaCount{z, c})
	}
	sort.Slice(ac, func(i, j int) bool { return ac[i].count > ac[j].count })
	fmt.Printf("Zips (%d):", len(ac))
	for _, a := range ac {
		fmt.Printf(" %s=%d", a.zip, a.count)
	}
	fmt.Println()

	if summary := analytics.Summarize(records); summary != nil {
		fmt.Printf("\nDate range: %s .. %s\n", summary.DateRange.Start, summary.DateRange.End)
		fmt.Printf("Avg outages/month: %g\n", summary.AverageOutagesPerMonth)
		fmt.Printf("Trend: %s (recent=%d older=%d)\n",
			summary.Trend.Direction, summary.Trend.Recent, summary.Trend.Older)
		fmt.Printf("Peak: hour count=%d, day=%s\n", summary.PeakHourCount, summary.PeakDay)
		fmt.Print("Worst neighborhoods:")
		for _, w := range summary.WorstNeighborhoods {
			fmt.Printf(" %s=%d", w.Area, w.Outages)
		}
		fmt.Println()
	}

	fmt.Println("\nScorecards:")
	for _, c := range analytics.Scorecards(records) {
		rel := analytics.Reliability(c.AreaStats)
		fmt.Printf("  %s %s: reliability=%d (%s) safety=%d (%s)\n",
			c.Area, c.Name,
			rel.Score, rel.Rating,
			c.Safety.Score, c.Safety.Rating)
	}
}
