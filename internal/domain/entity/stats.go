// internal/domain/entity/stats.go
package entity

// PlaceCount pairs a place name with its occurrence count.
type PlaceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ScopeStats aggregates the flights of one scope: total count, distinct
// destinations after case folding, and the most frequent arrival places.
type ScopeStats struct {
	Scope              string       `json:"scope"`
	Count              int          `json:"count"`
	UniqueDestinations int          `json:"uniqueDestinations"`
	TopPlaces          []PlaceCount `json:"topPlaces"`
}

// YearRecap summarizes a single calendar year of flying.
type YearRecap struct {
	Year               string `json:"year"`
	Flights            int    `json:"flights"`
	UniqueDestinations int    `json:"uniqueDestinations"`
	TopDestination     string `json:"topDestination"`
}
