package model

import (
	"fmt"
	"strings"
)

// InputError describes one input record rejected at the I/O boundary.
// The record is skipped; the rest of the batch continues.
type InputError struct {
	Source string `json:"source"`          // "officers", "sites", "zones"
	Row    int    `json:"row"`             // 1-based data row, 0 if unknown
	ID     string `json:"id,omitempty"`    // record identifier when known
	Field  string `json:"field,omitempty"` // offending column
	Reason string `json:"reason"`
}

func (e *InputError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Source)
	if e.Row > 0 {
		fmt.Fprintf(&sb, " row %d", e.Row)
	}
	if e.ID != "" {
		fmt.Fprintf(&sb, " (%s)", e.ID)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " field %q", e.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	return sb.String()
}
