package transcoder

import (
	"context"
	"errors"
)

// ErrInvalidDirectory is returned when a video directory does not exist or is not a directory.
var ErrInvalidDirectory = errors.New("invalid directory")

// VideoExtensions lists the containers picked up from an input directory.
var VideoExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}

// Transcoder turns videos into size-bounded MP3 files.
type Transcoder interface {
	// ListVideos returns the video files directly inside dir, sorted by name.
	ListVideos(dir string) ([]string, error)
	// Convert extracts and exports the audio of one video. It never panics on
	// media problems; they are reported through Result.
	Convert(ctx context.Context, videoPath string) Result
	// ConvertAll converts every video in dir in listing order.
	ConvertAll(ctx context.Context, dir string) ([]Result, error)
	// ProcessDirectory is ConvertAll reduced to the usable audio paths.
	ProcessDirectory(ctx context.Context, dir string) ([]string, error)
	// ListAudio returns the MP3 files in the audio directory, sorted.
	ListAudio() ([]string, error)
}
