// Package keycodec converts key material between raw bytes, base64 and
// 0x-prefixed hex, with a permissive detect-and-convert entry point for
// values whose origin format is unknown.
package keycodec

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
)

var hexPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]+$`)

// BytesToBase64 returns standard base64 encoding without newlines.
func BytesToBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// Base64ToBytes decodes standard base64.
func Base64ToBytes(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// BytesToHex returns lower-case hex with a 0x prefix.
func BytesToHex(b []byte) string { return "0x" + hex.EncodeToString(b) }

// HexToBytes decodes hex with or without a 0x prefix.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// DetectBytes converts a string of unknown encoding to bytes: hex is tried
// first, then base64, then the input is treated as UTF-8 text. It never
// fails; the text fallback always applies.
func DetectBytes(s string) []byte {
	if hexPattern.MatchString(s) {
		if b, err := HexToBytes(s); err == nil {
			return b
		}
	}
	if b, err := Base64ToBytes(s); err == nil {
		return b
	}
	return []byte(s)
}
