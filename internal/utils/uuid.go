package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for sync runs. Version 7 UUIDs sort by
// creation time, so run IDs in logs sort chronologically.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
