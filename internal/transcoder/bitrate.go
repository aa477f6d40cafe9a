package transcoder

import (
	"fmt"
	"math"
)

const (
	// DefaultBitrateKbps is used whenever the extracted WAV already fits the budget.
	DefaultBitrateKbps = 192
	MinBitrateKbps     = 32
	MaxBitrateKbps     = 192

	bytesPerMB = 1024 * 1024
)

// SelectBitrate picks the MP3 bitrate for a WAV of sizeMB lasting durationSeconds.
//
// At or under maxSizeMB the fixed 192 kbps is used. Over budget the bitrate is
// floor(maxSizeMB*8192/duration), i.e. the rate whose output is maxSizeMB,
// clamped to [32, 192].
func SelectBitrate(sizeMB, maxSizeMB, durationSeconds float64) (int, error) {
	if sizeMB <= maxSizeMB {
		return DefaultBitrateKbps, nil
	}
	if durationSeconds <= 0 || math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) {
		return 0, fmt.Errorf("invalid audio duration %v", durationSeconds)
	}

	target := int(math.Floor((maxSizeMB * 8192) / durationSeconds))
	return clampBitrate(target), nil
}

func clampBitrate(kbps int) int {
	if kbps < MinBitrateKbps {
		return MinBitrateKbps
	}
	if kbps > MaxBitrateKbps {
		return MaxBitrateKbps
	}
	return kbps
}

// SizeMB converts a byte count to binary megabytes.
func SizeMB(bytes int64) float64 {
	return float64(bytes) / bytesPerMB
}
