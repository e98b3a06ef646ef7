package utils

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint computes a BLAKE2b-256 digest over the JSON encoding of v and
// returns it hex-encoded.
//
// It is used to detect whether a value (for example the device system data)
// changed since it was last reported, without storing the reported value
// itself. Struct fields are encoded in declaration order and map keys are
// sorted by encoding/json, so equal values always yield equal fingerprints.
//
// Example usage:
//
//	fp, err := utils.Fingerprint(systemData)
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding value for fingerprint: %w", err)
	}
	return FingerprintBytes(data), nil
}

// FingerprintBytes returns the hex-encoded BLAKE2b-256 digest of data.
func FingerprintBytes(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
