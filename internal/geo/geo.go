// Package geo maps Nashville-area postal codes to neighborhood names and
// coordinates. The table is fixed reference data shared by every lookup;
// nothing here is computed or refreshed at runtime.
package geo

import "math"

// UnknownArea is the sentinel name for records with no postal code at all.
const UnknownArea = "Unknown Area"

// UnmappedDistanceMiles is returned by ZipDistanceMiles when either zip is
// not in the table: "far/unknown" rather than a failure.
const UnmappedDistanceMiles = 999

// degreesToMiles approximates one degree of separation at Nashville's
// latitude. Distances here feed coarse similarity buckets, not navigation.
const degreesToMiles = 70

// Entry describes one neighborhood keyed by zip code.
type Entry struct {
	Zip  string
	Name string
	Lat  float64
	Lon  float64
}

// table holds the metro zip entries in fixed iteration order. ClosestZip's
// first-wins tie-break depends on this order staying stable.
var table = []Entry{
	{"37201", "Downtown/Capitol Hill", 36.1627, -86.7816},
	{"37202", "North Nashville", 36.1950, -86.7810},
	{"37203", "East Nashville", 36.1633, -86.7520},
	{"37204", "Germantown/Salemtown", 36.1784, -86.7644},
	{"37205", "Sylvan Park/West End", 36.1450, -86.8200},
	{"37206", "Shelby Park/Weaver Park", 36.1533, -86.7180},
	{"37207", "Inglewood/Parkwood", 36.1317, -86.7420},
	{"37208", "North Nashville", 36.2100, -86.8050},
	{"37209", "Hermitage", 36.1083, -86.6580},
	{"37210", "Antioch", 36.0233, -86.7050},
	{"37211", "Brentwood", 35.9667, -86.7833},
	{"37212", "Belmont/The Nations", 36.1350, -86.8550},
	{"37214", "Southeast Nashville", 36.0733, -86.7050},
	{"37215", "Belle Meade", 36.1533, -86.9050},
	{"37216", "East Nashville", 36.1733, -86.7300},
	{"37217", "Riverside", 36.0933, -86.8700},
	{"37218", "MetroCenter", 36.1650, -86.8350},
	{"37219", "Downtown", 36.1600, -86.7750},
	{"37220", "Green Hills/Buena Vista", 36.1117, -86.8033},
	{"37221", "Hendersonville", 36.3050, -86.6250},
	{"37222", "Smyrna/Lavergne", 35.9933, -86.5883},
	{"37224", "Murfreesboro Pike", 36.0550, -86.6750},
	{"37228", "Airport/Berry Hill", 36.1250, -86.6880},
	{"37229", "Goodlettsville", 36.3167, -86.6950},
	{"37230", "Hermitage/Donelson", 36.0933, -86.6580},
	{"37231", "Antioch", 36.0433, -86.6980},
	{"37232", "Madison", 36.1933, -86.7333},
	{"37235", "Glencliff", 36.0700, -86.8150},
	{"37238", "Downtown", 36.1600, -86.7700},
}

var byZip = func() map[string]Entry {
	m := make(map[string]Entry, len(table))
	for _, e := range table {
		m[e.Zip] = e
	}
	return m
}()

// Lookup returns the table entry for a five-digit zip code.
func Lookup(zip string) (Entry, bool) {
	e, ok := byZip[zip]
	return e, ok
}

// NeighborhoodName resolves a zip code to its neighborhood name. The fallback
// chain is part of the contract: mapped name, then the truncated zip itself,
// then UnknownArea for an empty input. Downstream grouping relies on the raw
// zip surviving as an area key when the table has no entry for it.
func NeighborhoodName(zip string) string {
	if len(zip) > 5 {
		zip = zip[:5]
	}
	if e, ok := byZip[zip]; ok {
		return e.Name
	}
	if zip != "" {
		return zip
	}
	return UnknownArea
}

// ClosestZip returns the table zip nearest to the given coordinates by
// squared Euclidean distance in degree space (not great-circle; the metro
// area is small enough that the approximation holds). Ties go to the first
// entry in table order.
func ClosestZip(lat, lon float64) string {
	return closestZipIn(table, lat, lon)
}

func closestZipIn(entries []Entry, lat, lon float64) string {
	closest := ""
	minDist := -1.0

	for _, e := range entries {
		dLat := e.Lat - lat
		dLon := e.Lon - lon
		dist := dLat*dLat + dLon*dLon
		if minDist < 0 || dist < minDist {
			minDist = dist
			closest = e.Zip
		}
	}
	return closest
}

// ZipDistanceMiles approximates the distance between two zip codes in whole
// miles. Returns UnmappedDistanceMiles when either zip is not in the table.
func ZipDistanceMiles(zip1, zip2 string) float64 {
	z1, ok1 := byZip[zip1]
	z2, ok2 := byZip[zip2]
	if !ok1 || !ok2 {
		return UnmappedDistanceMiles
	}

	dLat := z1.Lat - z2.Lat
	dLon := z1.Lon - z2.Lon
	return math.Round(math.Sqrt(dLat*dLat+dLon*dLon) * degreesToMiles)
}
