package exifmeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/obs"
	"geo-forensics-service/internal/ports"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Rational is one EXIF RATIONAL value as stored: numerator over denominator.
type Rational struct {
	Num int64
	Den int64
}

// GPSTags holds the four GPS IFD tags needed to place an image.
type GPSTags struct {
	Lat    [3]Rational
	LatRef string
	Lon    [3]Rational
	LonRef string
}

// Coordinates converts degrees/minutes/seconds triples to signed decimal degrees.
// Latitude is negative unless its reference is North; longitude is negative
// unless its reference is East.
func (g GPSTags) Coordinates() (domain.Coordinates, error) {
	lat, err := dmsToDecimal(g.Lat)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := dmsToDecimal(g.Lon)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("longitude: %w", err)
	}

	if !hasRef(g.LatRef, 'N') {
		lat = -lat
	}
	if !hasRef(g.LonRef, 'E') {
		lon = -lon
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("coordinates out of range: lat=%f lon=%f", lat, lon)
	}
	return c, nil
}

func hasRef(ref string, want byte) bool {
	ref = strings.TrimSpace(ref)
	return len(ref) > 0 && ref[0] == want
}

func dmsToDecimal(v [3]Rational) (float64, error) {
	var parts [3]float64
	for i, r := range v {
		if r.Den == 0 {
			return 0, errors.New("zero denominator")
		}
		parts[i] = float64(r.Num) / float64(r.Den)
	}
	return parts[0] + parts[1]/60.0 + parts[2]/3600.0, nil
}

// Extractor resolves coordinates from embedded EXIF GPS tags.
// It is the first strategy of the resolution chain and never calls the network.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

func (e *Extractor) Name() string { return "metadata" }

// Extract returns the GPS position embedded in data.
// Missing, partial, or malformed metadata all yield an error wrapping
// domain.ErrMetadataAbsent.
func (e *Extractor) Extract(data []byte) (domain.Coordinates, error) {
	tags, err := readGPSTags(data)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("exif gps: %v: %w", err, domain.ErrMetadataAbsent)
	}

	c, err := tags.Coordinates()
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("exif gps: %v: %w", err, domain.ErrMetadataAbsent)
	}
	return c, nil
}

func (e *Extractor) Resolve(ctx context.Context, src domain.EvidenceSource) (_ ports.Resolution, err error) {
	defer obs.Time(ctx, "exif.Resolve")(&err)

	c, err := e.Extract(src.Data)
	if err != nil {
		return ports.Resolution{}, err
	}

	return ports.Resolution{
		Coordinates: c,
		Provenance:  domain.ProvenanceMetadata,
		Label:       domain.MetadataLabel,
	}, nil
}

// readGPSTags decodes the EXIF block and collects the four required GPS tags.
// The decoder can panic on truncated IFDs; that is reported as an ordinary error.
func readGPSTags(data []byte) (tags GPSTags, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode exif: %v", r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return GPSTags{}, fmt.Errorf("decode exif: %w", err)
	}

	latTag, err := x.Get(exif.GPSLatitude)
	if err != nil {
		return GPSTags{}, err
	}
	latRefTag, err := x.Get(exif.GPSLatitudeRef)
	if err != nil {
		return GPSTags{}, err
	}
	lonTag, err := x.Get(exif.GPSLongitude)
	if err != nil {
		return GPSTags{}, err
	}
	lonRefTag, err := x.Get(exif.GPSLongitudeRef)
	if err != nil {
		return GPSTags{}, err
	}

	if tags.Lat, err = rationalTriple(latTag); err != nil {
		return GPSTags{}, fmt.Errorf("GPSLatitude: %w", err)
	}
	if tags.Lon, err = rationalTriple(lonTag); err != nil {
		return GPSTags{}, fmt.Errorf("GPSLongitude: %w", err)
	}
	if tags.LatRef, err = latRefTag.StringVal(); err != nil {
		return GPSTags{}, fmt.Errorf("GPSLatitudeRef: %w", err)
	}
	if tags.LonRef, err = lonRefTag.StringVal(); err != nil {
		return GPSTags{}, fmt.Errorf("GPSLongitudeRef: %w", err)
	}

	return tags, nil
}

func rationalTriple(tag *tiff.Tag) ([3]Rational, error) {
	var out [3]Rational
	if tag.Count < 3 {
		return out, fmt.Errorf("expected 3 rationals, got %d", tag.Count)
	}
	for i := range out {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return out, err
		}
		out[i] = Rational{Num: num, Den: den}
	}
	return out, nil
}
