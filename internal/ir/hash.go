package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainTypeDef = "tdl/typedef/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TypeDefID computes the content-addressed ID of a definition.
// Two definitions share an ID exactly when they are Equal.
func TypeDefID(td TypeDef) (string, error) {
	canonical, err := MarshalCanonical(td.Canonical())
	if err != nil {
		return "", fmt.Errorf("TypeDefID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTypeDef, canonical), nil
}

// MustTypeDefID is like TypeDefID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustTypeDefID(td TypeDef) string {
	id, err := TypeDefID(td)
	if err != nil {
		panic(err)
	}
	return id
}
