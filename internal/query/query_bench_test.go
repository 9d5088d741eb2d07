package query

import (
	"math/rand"
	"testing"

	"github.com/staff-directory-api/internal/models"
)

// BenchmarkRunSearch benchmarks a search-and-filter pass over a large roster
func BenchmarkRunSearch(b *testing.B) {
	roster := randomRoster(rand.New(rand.NewSource(1)), 10000)
	spec := models.QuerySpec{SearchTerm: "kos", Department: "all", Availability: models.AvailabilityAvailable}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Run(roster, spec)
	}

	b.ReportMetric(float64(len(roster)*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkRunSortByName benchmarks the collated name sort
func BenchmarkRunSortByName(b *testing.B) {
	roster := randomRoster(rand.New(rand.NewSource(2)), 10000)
	spec := models.QuerySpec{SortBy: models.SortByName}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Run(roster, spec)
	}

	b.ReportMetric(float64(len(roster)*b.N)/b.Elapsed().Seconds(), "rows/sec")
}
