// Package scene holds the scene-graph types the history engine records
// against: node identities, keyframes, properties, palettes, and a small
// in-memory Graph used by callers that apply undo and redo results.
package scene
