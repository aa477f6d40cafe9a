package transcoder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (t *implTranscoder) ListVideos(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read video directory: %w", err)
	}

	var videos []string
	for _, e := range entries {
		if !IsVideoFile(e.Name()) || !isFile(dir, e) {
			continue
		}
		videos = append(videos, filepath.Join(dir, e.Name()))
	}

	sort.Strings(videos)
	return videos, nil
}

func (t *implTranscoder) ConvertAll(ctx context.Context, dir string) ([]Result, error) {
	videos, err := t.ListVideos(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(videos))
	for i, video := range videos {
		t.logger.Info(ctx, "[%d/%d] Processing %s", i+1, len(videos), filepath.Base(video))

		res := t.Convert(ctx, video)
		switch res.Status {
		case StatusConverted:
			t.logger.Info(ctx, "Created audio file: %s (%dk)", res.AudioPath, res.BitrateKbps)
		case StatusExisting:
			t.logger.Info(ctx, "Reusing audio file: %s", res.AudioPath)
		default:
			t.logger.Warn(ctx, "Failed to process %s: %s", filepath.Base(video), describe(res))
		}
		results = append(results, res)
	}
	return results, nil
}

func (t *implTranscoder) ProcessDirectory(ctx context.Context, dir string) ([]string, error) {
	results, err := t.ConvertAll(ctx, dir)
	if err != nil {
		return nil, err
	}
	return Artifacts(results), nil
}

func (t *implTranscoder) ListAudio() ([]string, error) {
	entries, err := os.ReadDir(t.opts.AudioDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audio directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || !isFile(t.opts.AudioDir, e) {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			files = append(files, filepath.Join(t.opts.AudioDir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// isFile follows symlinks, so a linked video or MP3 is listed like its target.
func isFile(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Artifacts keeps the audio paths of the usable results, preserving order.
func Artifacts(results []Result) []string {
	var paths []string
	for _, r := range results {
		if r.OK() {
			paths = append(paths, r.AudioPath)
		}
	}
	return paths
}

// IsVideoFile checks if the file has a supported video extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range VideoExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

// Stem is the filename without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func describe(r Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Status, r.Err)
	}
	return r.Status.String()
}
