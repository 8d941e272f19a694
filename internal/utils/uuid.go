package utils

import "github.com/google/uuid"

// UUIDGenerator names relay blobs. Version 7 ids sort by creation time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// the clock or entropy source failed, fall back to a random id
		return uuid.NewString()
	}
	return id.String()
}

// IsUUID reports whether s is a canonical id produced by Generate.
func IsUUID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}
