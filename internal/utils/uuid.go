package utils

import "github.com/google/uuid"

// UUIDGenerator issues item ids. Version 7 ids sort by creation time; a
// random v4 is used if the clock read fails.
type UUIDGenerator struct{}

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
