package domain

// A landmark identified by the vision model.
// Coordinates are the model's estimate and are never validated against a gazetteer.
type Landmark struct {
	Name        string
	Coordinates Coordinates
	Description string
}
