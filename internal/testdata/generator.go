package testdata

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"github.com/jask/tokenestate/internal/catalog"
)

var (
	titles    = []string{"Harbour Loft", "Garden Villa", "City Studio", "Lakeside Cabin", "Corner Terrace"}
	locations = []string{"Downtown", "Suburbs", "Waterfront", "Old Town", "Hills"}
	features  = []string{"Balcony", "Gym", "Garage", "Garden", "Pool", "Lift", "Storage"}
)

// Properties returns n deterministic listings for the given seed. Prices are
// drawn from a small set so equal sort keys are common.
func Properties(n int, seed int64) []catalog.Property {
	rng := rand.New(rand.NewSource(seed))
	out := make([]catalog.Property, 0, n)
	for i := 0; i < n; i++ {
		price := (rng.Intn(6) + 1) * 100_000
		p := catalog.Property{
			ID:               uuid.NewSHA1(uuid.NameSpaceOID, []byte("property:"+strconv.Itoa(i))).String(),
			Title:            titles[rng.Intn(len(titles))],
			Description:      fmt.Sprintf("Generated listing %d", i),
			Location:         locations[rng.Intn(len(locations))],
			Contact:          fmt.Sprintf("agent%d@example.com", i),
			Price:            fmt.Sprintf("%s ICP", groupThousands(price)),
			ImageURL:         "https://placehold.co/600x400",
			FundedPercentage: rng.Intn(101),
		}
		for j, k := 0, rng.Intn(4)+1; j < k; j++ {
			p.Features = append(p.Features, features[rng.Intn(len(features))])
		}
		out = append(out, p)
	}
	return out
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
