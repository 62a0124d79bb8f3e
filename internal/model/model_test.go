package model

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		c       Coordinate
		wantErr bool
	}{
		{"origin", Coordinate{0, 0}, false},
		{"corners", Coordinate{90, 180}, false},
		{"negative corners", Coordinate{-90, -180}, false},
		{"lat too high", Coordinate{90.0001, 0}, true},
		{"lon too low", Coordinate{0, -180.5}, true},
		{"nan", Coordinate{math.NaN(), 0}, true},
		{"inf", Coordinate{0, math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordinateValidate_ErisError(t *testing.T) {
	err := Coordinate{Lat: 95, Lon: 0}.Validate()
	require.Error(t, err)
	assert.Equal(t, "latitude 95 out of range [-90, 90]", err.Error())

	up := eris.Unpack(err)
	assert.Equal(t, "latitude 95 out of range [-90, 90]", up.ErrRoot.Msg)
	assert.NotEmpty(t, up.ErrRoot.Stack)
}

func TestInputErrorMessage(t *testing.T) {
	t.Parallel()

	err := &InputError{Source: "officers", Row: 4, ID: "FO-7", Field: "lat", Reason: "not a number"}
	assert.Equal(t, `officers row 4 (FO-7) field "lat": not a number`, err.Error())

	bare := &InputError{Source: "zones", Reason: "fewer than 3 vertices"}
	assert.Equal(t, "zones: fewer than 3 vertices", bare.Error())
}

func TestRunStatusValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "complete", string(RunStatusComplete))
	assert.Equal(t, "cancelled", string(RunStatusCancelled))
	assert.Equal(t, "failed", string(RunStatusFailed))
}

func TestAssignmentSiteLocation(t *testing.T) {
	t.Parallel()

	a := Assignment{SiteLat: 12.5, SiteLon: 77.25}
	assert.Equal(t, Coordinate{Lat: 12.5, Lon: 77.25}, a.SiteLocation())
}
