package stats

import (
	"sort"
	"strings"
	"unicode/utf8"

	"flightlog-service/internal/domain/entity"
)

// ScopeAllTime is the synthetic scope label covering the whole collection.
const ScopeAllTime = "All Time"

const (
	topPlacesLimit         = 5
	frequentEndpointsLimit = 6
)

// YearIndex returns the scope labels for the collection: ScopeAllTime first,
// then every distinct calendar year in descending order. Flights with an
// unparseable date contribute no year.
func YearIndex(flights []entity.Flight) []string {
	seen := make(map[string]bool)
	years := make([]string, 0)
	for i := range flights {
		year, ok := flights[i].Year()
		if !ok || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return append([]string{ScopeAllTime}, years...)
}

// ScopeCounts maps every scope label to its flight count. ScopeAllTime counts
// the whole collection, including flights whose date never parses.
func ScopeCounts(flights []entity.Flight) map[string]int {
	counts := map[string]int{ScopeAllTime: len(flights)}
	for i := range flights {
		if year, ok := flights[i].Year(); ok {
			counts[year]++
		}
	}
	return counts
}

// FilterByScope returns the flights belonging to the scope, most recent
// first. The sort is stable; flights with unparseable dates sort last and
// appear only in the ScopeAllTime scope.
func FilterByScope(flights []entity.Flight, scope string) []entity.Flight {
	out := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		if scope == ScopeAllTime {
			out = append(out, f)
			continue
		}
		if year, ok := f.Year(); ok && year == scope {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := out[i].DateValue()
		tj, _ := out[j].DateValue()
		return ti.After(tj)
	})
	return out
}

// ScopeStatistics aggregates one scope's flights: flight count, distinct
// destinations, and the top five arrival places by frequency. Destination
// identity is the trimmed, case-folded arrival name.
func ScopeStatistics(scope string, flights []entity.Flight) entity.ScopeStats {
	counts := destinationCounts(flights)
	top := rank(counts, topPlacesLimit)
	for i := range top {
		top[i].Name = displayPlace(top[i].Name)
	}
	return entity.ScopeStats{
		Scope:              scope,
		Count:              len(flights),
		UniqueDestinations: len(counts),
		TopPlaces:          top,
	}
}

// YearlyRecaps builds one recap per year of the index, in index order.
// ScopeAllTime entries are skipped; a year without flights recaps to zero
// counts and an "N/A" top destination.
func YearlyRecaps(flights []entity.Flight, years []string) []entity.YearRecap {
	recaps := make([]entity.YearRecap, 0, len(years))
	for _, year := range years {
		if year == ScopeAllTime {
			continue
		}
		inYear := FilterByScope(flights, year)
		counts := destinationCounts(inYear)
		topDestination := "N/A"
		if top := rank(counts, 1); len(top) > 0 {
			topDestination = displayPlace(top[0].Name)
		}
		recaps = append(recaps, entity.YearRecap{
			Year:               year,
			Flights:            len(inYear),
			UniqueDestinations: len(counts),
			TopDestination:     topDestination,
		})
	}
	return recaps
}

// FrequentEndpoints returns the six most used place names, pooling departures
// and arrivals over the whole collection. Names are counted raw: unlike
// destination aggregation there is no trimming or case folding here, so
// casing variants rank separately.
func FrequentEndpoints(flights []entity.Flight) []entity.PlaceCount {
	counts := make(map[string]int)
	for i := range flights {
		if flights[i].Departure != "" {
			counts[flights[i].Departure]++
		}
		if flights[i].Arrival != "" {
			counts[flights[i].Arrival]++
		}
	}
	return rank(counts, frequentEndpointsLimit)
}

// destinationCounts tallies arrivals by folded identity.
func destinationCounts(flights []entity.Flight) map[string]int {
	counts := make(map[string]int)
	for i := range flights {
		if key := foldPlace(flights[i].Arrival); key != "" {
			counts[key]++
		}
	}
	return counts
}

// rank orders counted names by descending count, then name ascending so that
// equal counts resolve the same way on every run, and keeps at most limit.
func rank(counts map[string]int, limit int) []entity.PlaceCount {
	places := make([]entity.PlaceCount, 0, len(counts))
	for name, count := range counts {
		places = append(places, entity.PlaceCount{Name: name, Count: count})
	}
	sort.Slice(places, func(i, j int) bool {
		if places[i].Count != places[j].Count {
			return places[i].Count > places[j].Count
		}
		return places[i].Name < places[j].Name
	})
	if len(places) > limit {
		places = places[:limit]
	}
	return places
}

// foldPlace normalizes a place name for identity comparison.
func foldPlace(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// displayPlace renders a folded place name for output, upper-casing the
// first rune only.
func displayPlace(folded string) string {
	r, size := utf8.DecodeRuneInString(folded)
	if size == 0 || r == utf8.RuneError {
		return folded
	}
	return strings.ToUpper(string(r)) + folded[size:]
}
