package model

// Officer is a field officer. Location and Active change as the allocation
// engine assigns sites.
type Officer struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	Location Coordinate `json:"location"`
	Active   bool       `json:"active"`
}

// Site is a pending field-work request.
type Site struct {
	RequestID    string     `json:"request_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Location     Coordinate `json:"location"`
}

// Zone is a named polygonal region. Vertices form a simple ring and need
// not repeat the first vertex at the end.
type Zone struct {
	ID       string       `json:"id"`
	Vertices []Coordinate `json:"vertices"`
}
