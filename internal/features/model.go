package features

// RawListingAttributes is the wire shape of a listing as submitted to the
// prediction endpoints. Every field is optional; pointers distinguish
// "absent" from a legitimate zero or empty string so defaults only apply
// when the caller really omitted the field.
type RawListingAttributes struct {
	Latitude                    *float64 `json:"latitude"`
	Longitude                   *float64 `json:"longitude"`
	RoomType                    *string  `json:"room_type"`
	NeighbourhoodGroup          *string  `json:"neighbourhood_group"`
	Neighbourhood               *string  `json:"neighbourhood"`
	MinimumNights               *float64 `json:"minimum_nights"`
	NumberOfReviews             *float64 `json:"number_of_reviews"`
	ReviewsPerMonth             *float64 `json:"reviews_per_month"`
	CalculatedHostListingsCount *float64 `json:"calculated_host_listings_count"`
	Availability365             *float64 `json:"availability_365"`
}

// FeatureSet maps engineered feature names to numeric values.
type FeatureSet map[string]float64

// Defaults substituted for missing raw fields. These match the values the
// models were trained against and must stay in sync with cmd/trainer.
const (
	DefaultLatitude           = 40.7580
	DefaultLongitude          = -73.9855
	DefaultMinimumNights      = 1
	DefaultNumberOfReviews    = 0
	DefaultReviewsPerMonth    = 0
	DefaultHostListingsCount  = 1
	DefaultAvailability365    = 365
	DefaultRoomType           = "Entire home/apt"
	DefaultNeighbourhoodGroup = "Manhattan"
	DefaultNeighbourhood      = "Harlem"
)

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orDefaultStr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
