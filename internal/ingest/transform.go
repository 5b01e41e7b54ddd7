package ingest

import (
	"context"
	"log/slog"

	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

// OutageTransformer implements Transformer using the domain parser plus a
// zip-code resolution chain for records that arrive without one.
type OutageTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates an OutageTransformer. Pass a nil geocoder to skip
// reverse geocoding; coordinate-bearing records then resolve against the
// static zip table only.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *OutageTransformer {
	return &OutageTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *OutageTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutageRecord, error) {
	rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutageRecord{}, err
	}
	return t.resolveZip(ctx, rec), nil
}

// resolveZip fills a missing zip code from coordinates: reverse geocoding
// first when available, then the nearest entry in the static table. Records
// without coordinates pass through and aggregate under the unknown area.
func (t *OutageTransformer) resolveZip(ctx context.Context, rec domain.OutageRecord) domain.OutageRecord {
	if rec.ZipCode != "" || !rec.HasCoordinates() {
		return rec
	}

	if t.geocoder != nil {
		zip, err := t.geocoder.ReverseGeocode(ctx, rec.Latitude, rec.Longitude)
		if err != nil {
			t.logger.Warn("reverse geocode failed, falling back to static table",
				"error", err, "outage_id", rec.ID)
		} else if zip != "" {
			rec.ZipCode = zip
			return rec
		}
	}

	rec.ZipCode = geo.ClosestZip(rec.Latitude, rec.Longitude)
	return rec
}
