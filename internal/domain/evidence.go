package domain

// Provenance records which strategy produced an item's coordinates.
type Provenance string

const (
	ProvenanceMetadata Provenance = "METADATA"
	ProvenanceAIVision Provenance = "AI_VISION"
)

// Label assigned to every item resolved from embedded GPS tags.
const MetadataLabel = "GPS metadata"

// Raw input to the resolution pipeline: one submitted image.
type EvidenceSource struct {
	Name string
	Data []byte
}

// Represents one resolved piece of photographic evidence.
// An EvidenceItem is created once by the pipeline and never modified afterwards.
// Coordinates is nil if and only if resolution failed; items placed in a Track
// always carry coordinates.
type EvidenceItem struct {
	SourceFile   string
	Coordinates  *Coordinates
	Provenance   Provenance
	Label        string
	Description  string
	RawModelText *string
}

// Resolved reports whether the item carries coordinates.
func (e EvidenceItem) Resolved() bool { return e.Coordinates != nil }

// Return the navigation link for the item, or "" when it is unresolved.
func (e EvidenceItem) MapsURL() string {
	if e.Coordinates == nil {
		return ""
	}
	return e.Coordinates.MapsURL()
}

// Ordered sequence of resolved evidence in submission order.
// Consumers may take a prefix for timeline playback but must never reorder it.
type Track []EvidenceItem

// Prefix returns the first step items of the track. step is clamped to [0, len(t)].
func (t Track) Prefix(step int) Track {
	if step < 0 {
		step = 0
	}
	if step > len(t) {
		step = len(t)
	}
	return t[:step:step]
}

// Return the coordinates of every item, in track order.
func (t Track) Points() []Coordinates {
	out := make([]Coordinates, 0, len(t))
	for _, item := range t {
		if item.Coordinates == nil {
			continue
		}
		out = append(out, *item.Coordinates)
	}
	return out
}
