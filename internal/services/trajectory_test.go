package services

import (
	"geo-forensics-service/internal/domain"
	"math"
	"testing"
)

func track(points ...domain.Coordinates) domain.Track {
	t := make(domain.Track, 0, len(points))
	for i, p := range points {
		p := p
		t = append(t, domain.EvidenceItem{
			SourceFile:  string(rune('a'+i)) + ".jpg",
			Coordinates: &p,
			Provenance:  domain.ProvenanceMetadata,
			Label:       domain.MetadataLabel,
		})
	}
	return t
}

func TestTotalDistanceEmptyAndSingle(t *testing.T) {
	if got := TotalDistance(nil); got != 0 {
		t.Fatalf("expected 0 for empty track, got %f", got)
	}
	if got := TotalDistance(track(domain.Coordinates{Lat: 48.8584, Lon: 2.2945})); got != 0 {
		t.Fatalf("expected 0 for single item, got %f", got)
	}
	if legs := TrackLegs(nil); len(legs) != 0 {
		t.Fatalf("expected no legs, got %v", legs)
	}
}

func TestGreatCircleKmOneDegreeOfLongitudeOnEquator(t *testing.T) {
	want := EarthRadiusKm * math.Pi / 180
	got := GreatCircleKm(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 1})
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected %f km, got %f", want, got)
	}
}

func TestTotalDistanceSumsConsecutiveLegs(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}
	c := domain.Coordinates{Lat: 1, Lon: 1}

	got := TotalDistance(track(a, b, c))
	want := GreatCircleKm(a, b) + GreatCircleKm(b, c)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}

	direct := GreatCircleKm(a, c)
	if math.Abs(got-direct) < 1 {
		t.Fatalf("expected path length %f to differ from direct distance %f", got, direct)
	}

	legs := TrackLegs(track(a, b, c))
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
}

func TestTotalDistanceIsSymmetricUnderReversal(t *testing.T) {
	a := domain.Coordinates{Lat: 35.6586, Lon: 139.7454}
	b := domain.Coordinates{Lat: 34.9671, Lon: 135.7727}
	c := domain.Coordinates{Lat: 43.0621, Lon: 141.3544}

	forward := TotalDistance(track(a, b, c))
	backward := TotalDistance(track(c, b, a))
	if math.Abs(forward-backward) > 1e-9 {
		t.Fatalf("expected reversal to keep total, got %f vs %f", forward, backward)
	}
}

func TestTotalDistanceDependsOnOrder(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}
	c := domain.Coordinates{Lat: 1, Lon: 1}

	inOrder := TotalDistance(track(a, b, c))
	shuffled := TotalDistance(track(a, c, b))
	if math.Abs(inOrder-shuffled) < 1 {
		t.Fatalf("expected order to change the total, got %f and %f", inOrder, shuffled)
	}
}

func TestTotalDistanceOfPrefix(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}
	c := domain.Coordinates{Lat: 1, Lon: 1}
	tr := track(a, b, c)

	if got, want := TotalDistance(tr.Prefix(2)), GreatCircleKm(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected prefix distance %f, got %f", want, got)
	}
}
