package transcoder

// Status tags the outcome of a single conversion.
type Status int

const (
	// StatusConverted means a new MP3 was exported.
	StatusConverted Status = iota
	// StatusExisting means the MP3 was already there and nothing was done.
	StatusExisting
	// StatusNoAudio means the video has no audio track. Expected, not an error.
	StatusNoAudio
	// StatusFailed means probing, extraction or export failed; see Result.Err.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusExisting:
		return "existing"
	case StatusNoAudio:
		return "no audio"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what Convert did with one video.
type Result struct {
	Video       string
	AudioPath   string
	Status      Status
	BitrateKbps int
	Err         error
}

// OK reports whether AudioPath points at a usable artifact.
func (r Result) OK() bool {
	return r.Status == StatusConverted || r.Status == StatusExisting
}

func (r Result) fail(err error) Result {
	r.Status = StatusFailed
	r.Err = err
	return r
}
