package fleet

import (
	"sort"
	"strconv"
	"strings"
)

// SortMode selects the ordering applied to the car view.
type SortMode string

const (
	// SortRecommended orders available cars first, then by ascending price.
	SortRecommended SortMode = "recommended"
	SortPriceAsc    SortMode = "price-asc"
	SortPriceDesc   SortMode = "price-desc"
	SortMakeAsc     SortMode = "make-asc"
)

// ParseSortMode maps arbitrary input to a known mode, falling back to
// recommended.
func ParseSortMode(value string) SortMode {
	switch SortMode(value) {
	case SortPriceAsc, SortPriceDesc, SortMakeAsc:
		return SortMode(value)
	default:
		return SortRecommended
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Search returns the cars matching a case-insensitive substring query
// against id, make, model, and the stringified daily rate. An empty query
// passes everything. The input slice is never mutated.
func Search(cars []Car, query string) []Car {
	q := normalize(query)
	if q == "" {
		out := make([]Car, len(cars))
		copy(out, cars)
		return out
	}

	out := make([]Car, 0, len(cars))
	for _, car := range cars {
		if strings.Contains(normalize(car.ID), q) ||
			strings.Contains(normalize(car.Make), q) ||
			strings.Contains(normalize(car.Model), q) ||
			strings.Contains(strconv.FormatFloat(car.PricePerDay, 'f', -1, 64), q) {
			out = append(out, car)
		}
	}
	return out
}

// Sort returns a sorted copy of cars according to mode. Unknown modes sort
// as recommended. Sorting is stable so equal elements keep their fleet order.
func Sort(cars []Car, mode SortMode) []Car {
	out := make([]Car, len(cars))
	copy(out, cars)

	switch mode {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PricePerDay < out[j].PricePerDay
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PricePerDay > out[j].PricePerDay
		})
	case SortMakeAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Label() < out[j].Label()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Available != out[j].Available {
				return out[i].Available
			}
			return out[i].PricePerDay < out[j].PricePerDay
		})
	}
	return out
}

// Metrics are the headline numbers shown above the fleet view.
type Metrics struct {
	FleetSize    int
	Available    int
	AvgRate      float64
	LocalRevenue float64
}

// ComputeMetrics derives fleet metrics. localRevenue is the sum of local
// booking totals, passed through untouched; it is a client-side
// approximation, not a remote financial figure.
func ComputeMetrics(cars []Car, localRevenue float64) Metrics {
	m := Metrics{FleetSize: len(cars), LocalRevenue: localRevenue}
	var sum float64
	for _, car := range cars {
		if car.Available {
			m.Available++
		}
		sum += car.PricePerDay
	}
	if len(cars) > 0 {
		m.AvgRate = sum / float64(len(cars))
	}
	return m
}

// Insights are the secondary fleet statistics on the insights tab.
type Insights struct {
	Unavailable int
	HighestRate float64
}

// ComputeInsights derives insight statistics; an empty fleet yields zeros.
func ComputeInsights(cars []Car) Insights {
	var in Insights
	for _, car := range cars {
		if !car.Available {
			in.Unavailable++
		}
		if car.PricePerDay > in.HighestRate {
			in.HighestRate = car.PricePerDay
		}
	}
	return in
}
