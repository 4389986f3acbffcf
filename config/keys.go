package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
)

// GenerateRandomKey returns the JWT signing key: JWT_SECRET from the
// environment when set, otherwise a random per-process key (tokens then
// survive only until restart, which is fine for local development).
func GenerateRandomKey() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate JWT key: %v", err)
	}
	return hex.EncodeToString(b)
}
