package model

// Region is one of the four fixed sales regions.
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionWest  Region = "West"
	RegionEast  Region = "East"
)

// Regions lists all regions in canonical order.
var Regions = []Region{RegionNorth, RegionSouth, RegionWest, RegionEast}

// ParseRegion maps raw region text to a Region.
// Anything outside the fixed four is rejected.
func ParseRegion(s string) (Region, bool) {
	switch Region(s) {
	case RegionNorth, RegionSouth, RegionWest, RegionEast:
		return Region(s), true
	}
	return "", false
}
