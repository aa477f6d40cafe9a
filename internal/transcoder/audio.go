package transcoder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/needle-flow/pkg/ffprobe"
)

func (t *implTranscoder) Convert(ctx context.Context, videoPath string) Result {
	stem := Stem(videoPath)
	res := Result{
		Video:     videoPath,
		AudioPath: filepath.Join(t.opts.AudioDir, stem+".mp3"),
	}

	if _, err := os.Stat(res.AudioPath); err == nil {
		t.logger.Info(ctx, "Audio file already exists for %s, skipping conversion", videoPath)
		res.Status = StatusExisting
		return res
	}

	if err := os.MkdirAll(t.opts.AudioDir, 0755); err != nil {
		return res.fail(fmt.Errorf("create audio dir: %w", err))
	}

	// Covers every return below, including a WAV left by an interrupted run.
	tempWav := filepath.Join(t.opts.AudioDir, stem+"_temp.wav")
	defer t.cleanupTempFile(ctx, tempWav)

	info, err := ffprobe.Inspect(ctx, t.executor, t.opts.FFprobePath, videoPath)
	if err != nil {
		t.logger.Error(ctx, "Error probing %s: %v", videoPath, err)
		return res.fail(err)
	}
	if info.AudioStreamCount() == 0 {
		t.logger.Warn(ctx, "No audio track found in %s", videoPath)
		res.Status = StatusNoAudio
		return res
	}

	if err := t.extractAudio(ctx, videoPath, tempWav); err != nil {
		t.logger.Error(ctx, "Error extracting audio from %s: %v", videoPath, err)
		return res.fail(err)
	}

	bitrate, err := t.chooseBitrate(ctx, tempWav)
	if err != nil {
		t.logger.Error(ctx, "Error processing audio file %s: %v", tempWav, err)
		return res.fail(err)
	}

	if err := t.exportMP3(ctx, tempWav, res.AudioPath, bitrate); err != nil {
		t.logger.Error(ctx, "Error exporting %s: %v", res.AudioPath, err)
		// A partial MP3 would be mistaken for a finished one on the next run.
		t.cleanupTempFile(ctx, res.AudioPath)
		return res.fail(err)
	}

	res.Status = StatusConverted
	res.BitrateKbps = bitrate
	return res
}

// extractAudio writes the first audio track of videoPath as uncompressed WAV.
func (t *implTranscoder) extractAudio(ctx context.Context, videoPath, wavPath string) error {
	t.logger.Debug(ctx, "Extracting audio: %s -> %s", videoPath, wavPath)

	// -vn: drop video, pcm_s16le: 16-bit PCM, 44.1kHz stereo
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-c:a", "pcm_s16le",
		"-ar", "44100",
		"-ac", "2",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, t.opts.FFmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	if _, err := os.Stat(wavPath); err != nil {
		return fmt.Errorf("ffmpeg extract audio: no output: %w", err)
	}
	return nil
}

// chooseBitrate measures the WAV and picks the export bitrate. The WAV is only
// probed for its duration when it is over budget.
func (t *implTranscoder) chooseBitrate(ctx context.Context, wavPath string) (int, error) {
	stat, err := os.Stat(wavPath)
	if err != nil {
		return 0, fmt.Errorf("stat wav: %w", err)
	}
	sizeMB := SizeMB(stat.Size())

	duration := 0.0
	if sizeMB > t.opts.MaxSizeMB {
		info, err := ffprobe.Inspect(ctx, t.executor, t.opts.FFprobePath, wavPath)
		if err != nil {
			return 0, fmt.Errorf("probe wav: %w", err)
		}
		duration = info.DurationSeconds()
	}

	bitrate, err := SelectBitrate(sizeMB, t.opts.MaxSizeMB, duration)
	if err != nil {
		return 0, err
	}
	t.logger.Debug(ctx, "WAV %.2f MB (max %.2f MB, %.1fs) -> %dk", sizeMB, t.opts.MaxSizeMB, duration, bitrate)
	return bitrate, nil
}

func (t *implTranscoder) exportMP3(ctx context.Context, wavPath, mp3Path string, bitrateKbps int) error {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", wavPath,
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", fmt.Sprintf("%dk", bitrateKbps),
		"-y",
		mp3Path,
	}

	if _, err := t.executor.Execute(ctx, t.opts.FFmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg export mp3: %w", err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscoder) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
		}
		return
	}
	t.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
}
