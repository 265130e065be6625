package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/obs"
	"geo-forensics-service/internal/ports"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mdobak/go-xerrors"
)

// LandmarkPrompt is the fixed instruction sent with every image.
const LandmarkPrompt = `Identify the landmark in this photo. Return ONLY a single raw JSON object, with no markdown:
{"name": "Landmark Name", "lat": 0.0, "lng": 0.0, "desc": "1-sentence context"}
If the landmark is unknown or generic, return {"error": "unknown"}.`

// Label used when the model returns an empty landmark name.
const unnamedLandmarkLabel = "AI vision match"

// LandmarkIdentifier asks a vision model where a photo was taken.
//
// Each Identify call sends one instruction and one image; there is no
// conversation state and no retry here. When a cache is configured, images
// already identified (by SHA-256 of their bytes) skip the model entirely.
type LandmarkIdentifier struct {
	model ports.VisionModel
	cache ports.LandmarkCache
}

// NewLandmarkIdentifier builds an identifier. model may be nil when the
// provider is not configured; Ready then reports ErrServiceUnavailable.
// cache is optional.
func NewLandmarkIdentifier(model ports.VisionModel, cache ports.LandmarkCache) *LandmarkIdentifier {
	return &LandmarkIdentifier{model: model, cache: cache}
}

func (li *LandmarkIdentifier) Name() string { return "landmark" }

func (li *LandmarkIdentifier) Ready() error {
	if li.model == nil {
		return &domain.ConfigError{Key: "GEMINI_API_KEY"}
	}
	return nil
}

// Identify returns the landmark in src and the raw model reply.
// The reply is "" on a cache hit.
func (li *LandmarkIdentifier) Identify(
	ctx context.Context,
	src domain.EvidenceSource,
) (_ domain.Landmark, _ string, err error) {
	defer obs.Time(ctx, "landmark.Identify")(&err)

	if err := li.Ready(); err != nil {
		return domain.Landmark{}, "", err
	}

	key := ContentKey(src.Data)

	if li.cache != nil {
		l, ok, err := li.cache.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "landmark cache read failed",
				slog.String("file", src.Name),
				slog.Any("error", xerrors.New(err)),
			)
		} else if ok {
			return l, "", nil
		}
	}

	text, err := li.model.Generate(ctx, LandmarkPrompt, src.Data, http.DetectContentType(src.Data))
	if err != nil {
		return domain.Landmark{}, "", fmt.Errorf("identify landmark: %w", err)
	}

	l, err := ParseLandmarkReply(text)
	if err != nil {
		return domain.Landmark{}, text, fmt.Errorf("identify landmark: %w", err)
	}

	if li.cache != nil {
		if err := li.cache.Put(ctx, key, l); err != nil {
			slog.WarnContext(ctx, "landmark cache write failed",
				slog.String("file", src.Name),
				slog.Any("error", xerrors.New(err)),
			)
		}
	}

	return l, text, nil
}

func (li *LandmarkIdentifier) Resolve(ctx context.Context, src domain.EvidenceSource) (ports.Resolution, error) {
	l, raw, err := li.Identify(ctx, src)
	if err != nil {
		return ports.Resolution{}, err
	}

	label := strings.TrimSpace(l.Name)
	if label == "" {
		label = unnamedLandmarkLabel
	}

	res := ports.Resolution{
		Coordinates: l.Coordinates,
		Provenance:  domain.ProvenanceAIVision,
		Label:       label,
		Description: l.Description,
	}
	if raw != "" {
		res.RawModelText = &raw
	}
	return res, nil
}

// ContentKey returns the hex SHA-256 of image bytes, used as the cache key.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// landmarkReply is the JSON object the model is asked to return.
// Fields are raw so that a missing key, an explicit null, and a wrongly
// typed value can each be told apart.
type landmarkReply struct {
	Name  json.RawMessage `json:"name"`
	Lat   json.RawMessage `json:"lat"`
	Lng   json.RawMessage `json:"lng"`
	Lon   json.RawMessage `json:"lon"`
	Desc  json.RawMessage `json:"desc"`
	Error json.RawMessage `json:"error"`
}

// ParseLandmarkReply extracts a landmark from free-form model text.
//
// Only the substring from the first '{' to the last '}' is decoded, so prose
// or code fences around the object are ignored. A null lat or lng becomes 0.
// Every other problem is reported as a *domain.ParseFailure carrying the raw text.
func ParseLandmarkReply(text string) (domain.Landmark, error) {
	fail := func(format string, args ...any) (domain.Landmark, error) {
		return domain.Landmark{}, &domain.ParseFailure{Raw: text, Reason: fmt.Sprintf(format, args...)}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return fail("no JSON object in reply")
	}

	var r landmarkReply
	if err := json.Unmarshal([]byte(text[start:end+1]), &r); err != nil {
		return fail("invalid JSON: %v", err)
	}

	if present(r.Error) {
		return fail("model could not identify a landmark: %s", strings.Trim(string(r.Error), `"`))
	}

	if !present(r.Name) {
		return fail(`missing key "name"`)
	}
	var name string
	if err := json.Unmarshal(r.Name, &name); err != nil {
		return fail(`"name" is not a string`)
	}

	lat, err := nullableFloat("lat", r.Lat)
	if err != nil {
		return fail("%v", err)
	}

	// "lon" stands in for "lng" when lng is absent, or null while lon has a value.
	lonRaw := r.Lng
	if len(r.Lng) == 0 || (!present(r.Lng) && present(r.Lon)) {
		lonRaw = r.Lon
	}
	lon, err := nullableFloat("lng", lonRaw)
	if err != nil {
		return fail("%v", err)
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return fail("coordinates out of range: lat=%f lon=%f", lat, lon)
	}

	var desc string
	if present(r.Desc) {
		_ = json.Unmarshal(r.Desc, &desc)
	}

	return domain.Landmark{
		Name:        strings.TrimSpace(name),
		Coordinates: c,
		Description: strings.TrimSpace(desc),
	}, nil
}

// nullableFloat decodes a required numeric key; an explicit null yields 0.
func nullableFloat(key string, raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing key %q", key)
	}
	if string(raw) == "null" {
		return 0, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, errors.New(key + " is not a number")
	}
	return f, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
