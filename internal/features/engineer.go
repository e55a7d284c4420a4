package features

// --------------------------------------------------
// Feature engineering (serving AND training path)
// --------------------------------------------------

// Engineer turns raw listing attributes into the named feature map the
// models consume. Pure and deterministic: missing fields get documented
// defaults, every categorical lookup has a fallback, and it never fails.
func Engineer(raw RawListingAttributes) FeatureSet {
	fs := FeatureSet{
		"latitude":                       orDefault(raw.Latitude, DefaultLatitude),
		"longitude":                      orDefault(raw.Longitude, DefaultLongitude),
		"minimum_nights":                 orDefault(raw.MinimumNights, DefaultMinimumNights),
		"number_of_reviews":              orDefault(raw.NumberOfReviews, DefaultNumberOfReviews),
		"reviews_per_month":              orDefault(raw.ReviewsPerMonth, DefaultReviewsPerMonth),
		"calculated_host_listings_count": orDefault(raw.CalculatedHostListingsCount, DefaultHostListingsCount),
		"availability_365":               orDefault(raw.Availability365, DefaultAvailability365),
	}

	fs["availability_ratio"] = fs["availability_365"] / 365

	// Guarded: zero reviews means zero density, never a division by zero.
	if fs["number_of_reviews"] > 0 {
		fs["reviews_density"] = fs["reviews_per_month"] / fs["number_of_reviews"]
	} else {
		fs["reviews_density"] = 0
	}

	fs["min_nights_ratio"] = fs["minimum_nights"] / 365

	oneHot(fs, "room_type_", RoomTypes, orDefaultStr(raw.RoomType, DefaultRoomType))
	oneHot(fs, "neighbourhood_group_", NeighbourhoodGroups, orDefaultStr(raw.NeighbourhoodGroup, DefaultNeighbourhoodGroup))

	fs["neighbourhood_encoded"] = EncodeNeighbourhood(orDefaultStr(raw.Neighbourhood, DefaultNeighbourhood))

	return fs
}

// Columns returns the canonical feature order used at training time. The
// trainer persists this list as feature_columns.json and the aligner
// replays it at serving time.
func Columns() []string {
	return []string{
		"latitude",
		"longitude",
		"minimum_nights",
		"number_of_reviews",
		"reviews_per_month",
		"calculated_host_listings_count",
		"availability_365",
		"availability_ratio",
		"reviews_density",
		"min_nights_ratio",
		"room_type_Entire home/apt",
		"room_type_Private room",
		"room_type_Shared room",
		"neighbourhood_group_Bronx",
		"neighbourhood_group_Brooklyn",
		"neighbourhood_group_Manhattan",
		"neighbourhood_group_Queens",
		"neighbourhood_group_Staten Island",
		"neighbourhood_encoded",
	}
}
