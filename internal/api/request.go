package api

import (
	"fmt"

	"github.com/sells-group/field-allocator/internal/allocate"
	"github.com/sells-group/field-allocator/internal/model"
)

// allocateRequest is the /allocate body. Coordinates are pointers so an
// absent lat or lon is rejected rather than read as zero.
type allocateRequest struct {
	Officers []officerJSON `json:"officers"`
	Sites    []siteJSON    `json:"sites"`
	Zones    []zoneJSON    `json:"zones"`
}

type pointJSON struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type officerJSON struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Location *pointJSON `json:"location"`
	Active   bool       `json:"active"`
}

type siteJSON struct {
	RequestID    string     `json:"request_id"`
	CustomerName string     `json:"customer_name"`
	Location     *pointJSON `json:"location"`
}

type zoneJSON struct {
	ID       string      `json:"id"`
	Vertices []pointJSON `json:"vertices"`
}

// coordinate returns the point, or the name of the first missing field.
func (p *pointJSON) coordinate() (model.Coordinate, string) {
	switch {
	case p == nil || (p.Lat == nil && p.Lon == nil):
		return model.Coordinate{}, "lat/lon"
	case p.Lat == nil:
		return model.Coordinate{}, "lat"
	case p.Lon == nil:
		return model.Coordinate{}, "lon"
	}
	return model.Coordinate{Lat: *p.Lat, Lon: *p.Lon}, ""
}

func missing(source string, row int, id, field string) *model.InputError {
	return &model.InputError{Source: source, Row: row, ID: id, Field: field, Reason: "missing value"}
}

// input converts the request into engine input. Records with a missing
// coordinate are dropped and reported; range and duplicate checks are left
// to allocate.Execute. Rows are 1-based positions in the request arrays.
func (req allocateRequest) input() allocate.Input {
	var in allocate.Input

	for i, o := range req.Officers {
		loc, field := o.Location.coordinate()
		if field != "" {
			in.InputErrors = append(in.InputErrors, missing("officers", i+1, o.ID, field))
			continue
		}
		in.Officers = append(in.Officers, model.Officer{ID: o.ID, Name: o.Name, Location: loc, Active: o.Active})
	}

	for i, s := range req.Sites {
		loc, field := s.Location.coordinate()
		if field != "" {
			in.InputErrors = append(in.InputErrors, missing("sites", i+1, s.RequestID, field))
			continue
		}
		in.Sites = append(in.Sites, model.Site{RequestID: s.RequestID, CustomerName: s.CustomerName, Location: loc})
	}

zones:
	for i, z := range req.Zones {
		vertices := make([]model.Coordinate, 0, len(z.Vertices))
		for j := range z.Vertices {
			c, field := z.Vertices[j].coordinate()
			if field != "" {
				in.InputErrors = append(in.InputErrors, missing("zones", i+1, z.ID, fmt.Sprintf("vertices[%d].%s", j, field)))
				continue zones
			}
			vertices = append(vertices, c)
		}
		in.Zones = append(in.Zones, model.Zone{ID: z.ID, Vertices: vertices})
	}

	return in
}
