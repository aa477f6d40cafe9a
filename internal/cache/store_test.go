package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestPathFor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "analysis")
	s := New(dir)

	tests := []struct {
		audio string
		want  string
	}{
		{"output/audio/talk.mp3", filepath.Join(dir, "talk_analysis.txt")},
		{"talk.wav", filepath.Join(dir, "talk_analysis.txt")},
		{"/abs/ep.1.mp3", filepath.Join(dir, "ep.1_analysis.txt")},
	}
	for _, tt := range tests {
		if got := s.PathFor(tt.audio); got != tt.want {
			t.Errorf("PathFor(%q) = %q, want %q", tt.audio, got, tt.want)
		}
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("PathFor should not create %s", dir)
	}
}

func TestLoadMissing(t *testing.T) {
	s := New(t.TempDir())

	found, content, err := s.Load("nothing.mp3")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found || content != "" {
		t.Errorf("Load() = (%v, %q), want (false, \"\")", found, content)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "analysis"))

	texts := []string{
		"",
		"single line",
		"# Overview\n\nThe talk covers **needles**.\n\n- 00:01 first\n- 00:42 second\n\nÜnïcödé ✓ 日本語",
	}
	for i, text := range texts {
		audio := filepath.Join("output", "audio", "clip"+string(rune('a'+i))+".mp3")
		if err := s.Save(audio, text); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		found, got, err := s.Load(audio)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !found || got != text {
			t.Errorf("round trip = (%v, %q), want (true, %q)", found, got, text)
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := New(t.TempDir())

	if err := s.Save("talk.mp3", "first version with a longer body"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("talk.mp3", "second"); err != nil {
		t.Fatal(err)
	}
	_, got, _ := s.Load("talk.mp3")
	if got != "second" {
		t.Errorf("Load() = %q, want second", got)
	}
}

func TestShouldSkip(t *testing.T) {
	s := New(t.TempDir())

	if s.ShouldSkip("talk.mp3", true) {
		t.Error("ShouldSkip(true) before save should be false")
	}
	if err := s.Save("talk.mp3", "done"); err != nil {
		t.Fatal(err)
	}
	if !s.Exists("talk.mp3") {
		t.Error("Exists() should be true after save")
	}
	if !s.ShouldSkip("talk.mp3", true) {
		t.Error("ShouldSkip(true) after save should be true")
	}
	if s.ShouldSkip("talk.mp3", false) {
		t.Error("ShouldSkip(false) should always be false")
	}
}

func TestListAllDerivesMP3Names(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ep2_analysis.txt", "ep1_analysis.txt", "notes.txt", "ep3_analysis.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := New(dir).ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	want := []Entry{
		{AudioFile: "ep1.mp3", AnalysisPath: filepath.Join(dir, "ep1_analysis.txt")},
		{AudioFile: "ep2.mp3", AnalysisPath: filepath.Join(dir, "ep2_analysis.txt")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAll() = %v, want %v", got, want)
	}
}

func TestListAllUsesRecordedAudioName(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Save("/media/interview.wav", "text"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("podcast.mp3", "text"); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	want := []Entry{
		{AudioFile: "interview.wav", AnalysisPath: filepath.Join(dir, "interview_analysis.txt")},
		{AudioFile: "podcast.mp3", AnalysisPath: filepath.Join(dir, "podcast_analysis.txt")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAll() = %v, want %v", got, want)
	}
}

func TestListAllIgnoresBrokenMeta(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ep1_analysis.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ep1_analysis.meta.yaml"), []byte(":::not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := New(dir).ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].AudioFile != "ep1.mp3" {
		t.Errorf("ListAll() = %v, want ep1.mp3 fallback", got)
	}
}

func TestListAllMissingDir(t *testing.T) {
	got, err := New(filepath.Join(t.TempDir(), "missing")).ListAll()
	if err != nil || len(got) != 0 {
		t.Errorf("ListAll() = %v, %v, want empty", got, err)
	}
}

func TestSaveMetaFailureLeavesNothingToSkip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	// A directory where the sidecar should go makes its write fail.
	if err := os.Mkdir(filepath.Join(dir, "ep1_analysis.meta.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := s.Save("ep1.mp3", "analysis"); err == nil {
		t.Fatal("Save() should report the sidecar failure")
	}
	if s.Exists("ep1.mp3") || s.ShouldSkip("ep1.mp3", true) {
		t.Error("a failed Save must not leave an analysis that later runs would skip")
	}
}

func TestSaveReportsIOError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(dir, 0755)

	if err := New(dir).Save("talk.mp3", "text"); err == nil {
		t.Error("Save() into a read-only dir should fail")
	}
}
