package product

import "time"

// RecencyWindow is the trailing window a product counts as recently
// launched. The boundary is inclusive: a product created exactly
// seven days before now is still recent.
const RecencyWindow = 7 * 24 * time.Hour

// FilterRecent returns the products created within RecencyWindow of
// now, preserving the input order. Products without a creation
// timestamp are dropped. Pure function, no I/O.
func FilterRecent(products []Product, now time.Time) []Product {
	cutoff := now.Add(-RecencyWindow)
	recent := make([]Product, 0, len(products))
	for _, p := range products {
		if p.CreatedAt.IsZero() {
			continue
		}
		if p.CreatedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, p)
	}
	return recent
}
