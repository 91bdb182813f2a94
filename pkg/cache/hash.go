package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// FrameKeyOpts is everything that changes a rendered frame.
type FrameKeyOpts struct {
	GraphVersion string  `json:"graph"`
	Format       string  `json:"format"`
	Theme        string  `json:"theme"`
	Width        float64 `json:"w"`
	Height       float64 `json:"h"`
	Scale        float64 `json:"scale,omitempty"`
	Hovered      string  `json:"hovered,omitempty"`
	Highlighted  string  `json:"highlighted,omitempty"`
	CameraX      float64 `json:"cx"`
	CameraY      float64 `json:"cy"`
	CameraRatio  float64 `json:"ratio"`
	Labels       string  `json:"labels,omitempty"`
}

// FrameKey returns the cache key for a frame.
func FrameKey(opts FrameKeyOpts) string {
	return hashKey("frame", opts)
}

// LayoutKey returns the cache key for the positions an engine computed
// for a graph.
func LayoutKey(graphVersion, engine string) string {
	return hashKey("layout", graphVersion, engine)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
