// Package dedupe recognizes rows that describe the same underlying content
// across monthly extracts and merges them into one record. A first pass
// accumulates records into an identity map, arbitrating collisions by date
// confidence and metric magnitude; a second pass catches late re-listings
// whose dates were only inferred from the reporting period, matching them
// to their properly-dated originals by title prefix.
package dedupe

// Rules carries the tunable thresholds of the merge and reconciliation
// passes. The defaults were chosen empirically against the combined export;
// they are configuration, not load-bearing constants.
type Rules struct {
	// MagnitudeFactor and MagnitudeFloor gate the "keep the metrics, adopt
	// the date" exception: a stored record survives a better-dated
	// collision when its impressions exceed MagnitudeFactor times the
	// incoming record's and are above MagnitudeFloor.
	MagnitudeFactor int64 `json:"magnitude_factor" yaml:"magnitude_factor"`
	MagnitudeFloor  int64 `json:"magnitude_floor" yaml:"magnitude_floor"`

	// TitlePrefixLen is how many leading characters two cleaned titles must
	// share for cross-period reconciliation to consider them the same
	// content. TitleMinLen excludes short titles from fuzzy matching
	// entirely; prefixes that short hit spurious matches.
	TitlePrefixLen int `json:"title_prefix_len" yaml:"title_prefix_len"`
	TitleMinLen    int `json:"title_min_len" yaml:"title_min_len"`
}

// DefaultRules returns the thresholds the report is built with.
func DefaultRules() Rules {
	return Rules{
		MagnitudeFactor: 10,
		MagnitudeFloor:  100,
		TitlePrefixLen:  10,
		TitleMinLen:     8,
	}
}
