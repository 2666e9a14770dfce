package history

import "errors"

var (
	// ErrEmptySnapshot is returned when restoring a snapshot that holds no volume.
	ErrEmptySnapshot = errors.New("history: empty snapshot")

	// ErrNoVolume is returned when a restore target volume is missing.
	ErrNoVolume = errors.New("history: no target volume")
)
