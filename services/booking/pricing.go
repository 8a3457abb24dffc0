package booking

import (
	"strings"

	"asokatrip/models"
)

// IsPerPax reports whether a package unit prices each guest, e.g. "/pax" or "per Pax".
func IsPerPax(unit string) bool {
	return strings.Contains(strings.ToLower(unit), "pax")
}

// CalculateTotal returns the booking amount for pax guests on pkg: price × pax for per-pax units,
// the flat price otherwise.
func CalculateTotal(pkg *models.TripPackage, pax int) int64 {
	if pkg == nil || pkg.Price <= 0 {
		return 0
	}
	if IsPerPax(pkg.Unit) {
		return pkg.Price * int64(pax)
	}
	return pkg.Price
}
