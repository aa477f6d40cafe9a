package cache

// Entry pairs a stored analysis with the audio file it was produced from.
type Entry struct {
	AudioFile    string
	AnalysisPath string
}

// Store is the filename-keyed analysis cache.
type Store interface {
	// PathFor derives <dir>/<audio_stem>_analysis.txt. It does not touch disk.
	PathFor(audioFile string) string
	Exists(audioFile string) bool
	// Load returns found=false and no error when no analysis is stored.
	Load(audioFile string) (found bool, content string, err error)
	// ShouldSkip is true only when skipping is enabled and an analysis exists.
	ShouldSkip(audioFile string, skipEnabled bool) bool
	// Save overwrites any previous analysis for audioFile.
	Save(audioFile, text string) error
	// ListAll returns every stored analysis ordered by analysis filename.
	ListAll() ([]Entry, error)
}
