package features

// --------------------------------------------------
// Categorical encodings (training-time constants)
// --------------------------------------------------
// These tables are the serving-side copy of the encodings baked into the
// trained models. Changing any entry without retraining silently corrupts
// every prediction, so the trainer imports this package instead of keeping
// its own copy.

// RoomTypes in one-hot order.
var RoomTypes = []string{
	"Entire home/apt",
	"Private room",
	"Shared room",
}

// NeighbourhoodGroups in one-hot order.
var NeighbourhoodGroups = []string{
	"Bronx",
	"Brooklyn",
	"Manhattan",
	"Queens",
	"Staten Island",
}

// UnknownNeighbourhoodFreq is the fallback frequency for neighbourhoods
// not seen during training.
const UnknownNeighbourhoodFreq = 0.01

// neighbourhoodFreq holds observed relative frequencies from the training
// dataset, keyed by neighbourhood name.
var neighbourhoodFreq = map[string]float64{
	"Harlem":             0.054,
	"Williamsburg":       0.078,
	"Upper West Side":    0.042,
	"Bedford-Stuyvesant": 0.076,
	"East Village":       0.035,
	"Brooklyn Heights":   0.020,
	"Astoria":            0.028,
	"Bushwick":           0.047,
	"Crown Heights":      0.031,
	"Upper East Side":    0.034,
}

// EncodeNeighbourhood returns the frequency encoding for a neighbourhood
// name, or the unknown fallback.
func EncodeNeighbourhood(name string) float64 {
	if f, ok := neighbourhoodFreq[name]; ok {
		return f
	}
	return UnknownNeighbourhoodFreq
}

// KnownNeighbourhoods returns the neighbourhood names present in the
// frequency table (order unspecified).
func KnownNeighbourhoods() []string {
	names := make([]string, 0, len(neighbourhoodFreq))
	for name := range neighbourhoodFreq {
		names = append(names, name)
	}
	return names
}

func oneHot(fs FeatureSet, prefix string, categories []string, value string) {
	for _, cat := range categories {
		v := 0.0
		if value == cat {
			v = 1.0
		}
		fs[prefix+cat] = v
	}
}
