package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	analysisSuffix = "_analysis.txt"
	metaSuffix     = "_analysis.meta.yaml"
)

// meta is written next to each analysis so ListAll can name the real audio
// file instead of assuming <stem>.mp3.
type meta struct {
	AudioFile string    `yaml:"audio_file"`
	SavedAt   time.Time `yaml:"saved_at"`
}

func (s *implStore) PathFor(audioFile string) string {
	return filepath.Join(s.dir, stem(audioFile)+analysisSuffix)
}

func (s *implStore) metaPathFor(audioFile string) string {
	return filepath.Join(s.dir, stem(audioFile)+metaSuffix)
}

func (s *implStore) Exists(audioFile string) bool {
	_, err := os.Stat(s.PathFor(audioFile))
	return err == nil
}

func (s *implStore) Load(audioFile string) (bool, string, error) {
	data, err := os.ReadFile(s.PathFor(audioFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("read analysis: %w", err)
	}
	return true, string(data), nil
}

func (s *implStore) ShouldSkip(audioFile string, skipEnabled bool) bool {
	if !skipEnabled {
		return false
	}
	return s.Exists(audioFile)
}

func (s *implStore) Save(audioFile, text string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create analysis dir: %w", err)
	}

	// Sidecar first: the analysis file is what ShouldSkip checks, so it is written last.
	data, err := yaml.Marshal(meta{AudioFile: filepath.Base(audioFile), SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode analysis meta: %w", err)
	}
	if err := os.WriteFile(s.metaPathFor(audioFile), data, 0644); err != nil {
		return fmt.Errorf("write analysis meta: %w", err)
	}

	if err := os.WriteFile(s.PathFor(audioFile), []byte(text), 0644); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	return nil
}

func (s *implStore) ListAll() ([]Entry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read analysis dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), analysisSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	result := make([]Entry, 0, len(names))
	for _, name := range names {
		audioStem := strings.TrimSuffix(name, analysisSuffix)
		result = append(result, Entry{
			AudioFile:    s.audioNameFor(audioStem),
			AnalysisPath: filepath.Join(s.dir, name),
		})
	}
	return result, nil
}

// audioNameFor prefers the recorded audio filename and falls back to <stem>.mp3.
func (s *implStore) audioNameFor(audioStem string) string {
	fallback := audioStem + ".mp3"

	data, err := os.ReadFile(filepath.Join(s.dir, audioStem+metaSuffix))
	if err != nil {
		return fallback
	}
	var m meta
	if err := yaml.Unmarshal(data, &m); err != nil || m.AudioFile == "" {
		return fallback
	}
	if stem(m.AudioFile) != audioStem {
		return fallback
	}
	return m.AudioFile
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
