package loader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	officerIDCols     = []string{"fo id", "off_id", "officer_id", "id"}
	officerNameCols   = []string{"field officer name", "officer_name", "name"}
	officerActiveCols = []string{"active (y/n)", "active"}
	siteIDCols        = []string{"request_id", "property_id", "id"}
	siteNameCols      = []string{"customer_name", "name"}
	siteLatCols       = []string{"property_latitude", "lat", "latitude"}
	siteLonCols       = []string{"property_longitude", "long", "lon", "lng", "longitude"}
	latCols           = []string{"lat", "latitude"}
	lonCols           = []string{"long", "lon", "lng", "longitude"}
	zoneIDCols        = []string{"zone", "zone_id", "id"}
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	vertexLat  = regexp.MustCompile(`^lat(\d+)$`)
	vertexLong = regexp.MustCompile(`^(?:long|lon|lng)(\d+)$`)
)

// header maps normalised column names to their index.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		key := normalize(c)
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

func normalize(s string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// find returns the index of the first alias present, or -1.
func (h header) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := h[a]; ok {
			return i
		}
	}
	return -1
}

// vertexColumn is one latN/longN pair.
type vertexColumn struct {
	n   int
	lat int
	lon int
}

// vertexColumns returns the latN/longN pairs present in the header ordered
// by N. A latN without a matching longN (or vice versa) is ignored.
func (h header) vertexColumns() []vertexColumn {
	lats := map[int]int{}
	lons := map[int]int{}
	for name, idx := range h {
		if m := vertexLat.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			lats[n] = idx
		} else if m := vertexLong.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			if _, seen := lons[n]; !seen {
				lons[n] = idx
			}
		}
	}
	var out []vertexColumn
	for n, lat := range lats {
		if lon, ok := lons[n]; ok {
			out = append(out, vertexColumn{n: n, lat: lat, lon: lon})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].n < out[j].n })
	return out
}
