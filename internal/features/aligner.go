package features

import "errors"

// ErrSchemaUnavailable means no feature schema was loaded at startup, so
// there is no defined vector order to project onto. This is the one
// alignment failure that must surface hard: proceeding would feed the
// model an arbitrary feature order.
var ErrSchemaUnavailable = errors.New("feature schema not loaded")

// Align projects a feature set onto the ordered schema, producing the
// fixed-length vector the model was fitted against. Names the schema knows
// but the feature set lacks contribute 0.
func Align(fs FeatureSet, schema []string) ([]float64, error) {
	if len(schema) == 0 {
		return nil, ErrSchemaUnavailable
	}

	vector := make([]float64, len(schema))
	for i, col := range schema {
		vector[i] = fs[col]
	}

	return vector, nil
}
