// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MappingSeparator separates key and value in a persisted mapping line.
const MappingSeparator = " -> "

// MappingRecord is one persisted "local → remote" association.
type MappingRecord struct {
	Key   string
	Value string
}

// String returns the record exactly as it is written to a mapping log.
func (r MappingRecord) String() string {
	return r.Key + MappingSeparator + r.Value
}
