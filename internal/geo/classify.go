package geo

// Zone relation constants describe where a site sits relative to the zone
// an officer currently occupies.
const (
	RelationSameZone = "same_zone"
	RelationNearby   = "nearby"
	RelationOutside  = "outside"
	RelationUnzoned  = "unzoned"
)

// Classify returns the zone relation for a site.
// Rules:
//   - unzoned: officer is not inside any zone
//   - same_zone: site is inside or on the officer's zone
//   - nearby: site is outside the zone AND exit distance <= nearbyKM
//   - outside: site is outside the zone AND exit distance > nearbyKM
func Classify(hasZone, sameZone bool, exitKM, nearbyKM float64) string {
	if !hasZone {
		return RelationUnzoned
	}
	if sameZone {
		return RelationSameZone
	}
	if exitKM <= nearbyKM {
		return RelationNearby
	}
	return RelationOutside
}
