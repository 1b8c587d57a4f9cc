package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one extracted CV file
type Metadata struct {
	Filename   string `json:"filename"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the raw file
	Size       int    `json:"size"`
	Format     string `json:"format"`
	Method     string `json:"method,omitempty"`
	Characters int    `json:"characters"`
	Readable   bool   `json:"readable"`
	Warning    string `json:"warning,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, raw []byte) *Metadata {
	return &Metadata{
		Filename:  filename,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
		Size:      len(raw),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
