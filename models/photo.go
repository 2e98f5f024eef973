// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"math"
	"strconv"
)

// PhotoItem is a single media item of the local library catalog.
//
// LocalID is the catalog's own identifier and is stable across runs; it is
// the key under which every sync store records progress for the item.
type PhotoItem struct {
	// LocalID identifies the item inside the local catalog.
	LocalID string `json:"id"`

	// PrimaryPath is the preferred file to upload (usually the edited image).
	PrimaryPath string `json:"path"`

	// FallbackPath is used when PrimaryPath does not exist on disk
	// (usually the original, unedited image).
	FallbackPath string `json:"original_path,omitempty"`

	// Location is the optional geolocation of the item.
	Location *Location `json:"location,omitempty"`
}

// HasLocation reports whether the item carries geolocation data.
func (p PhotoItem) HasLocation() bool {
	return p.Location != nil
}

// Location is a latitude/longitude pair in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are finite and inside the WGS84
// range.
func (l Location) Valid() bool {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// String renders the location in the "lat#lon" form recorded by the geotag
// store.
func (l Location) String() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + "#" +
		strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}
