package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/needle-flow/internal/cache"
	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
	"github.com/nguyentantai21042004/needle-flow/internal/workspace"
)

type cliTestEnv struct {
	baseDir    string
	inputDir   string
	outputDir  string
	configPath string
}

func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()
	t.Setenv(config.EnvGeminiAPIKey, "")
	t.Setenv(config.EnvVertexCredentials, "")

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		inputDir:   filepath.Join(base, "videos"),
		outputDir:  filepath.Join(base, "output"),
		configPath: filepath.Join(base, "config.yaml"),
	}
	if err := os.MkdirAll(env.inputDir, 0755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}

	content := "paths:\n" +
		"  input: " + env.inputDir + "\n" +
		"  output: " + env.outputDir + "\n" +
		"logging:\n" +
		"  level: error\n" + extra
	if err := os.WriteFile(env.configPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestPromptDefault(t *testing.T) {
	env := setupCLITestEnv(t, "gemini:\n  prompt: custom prompt\n")

	out, err := env.run(t, "prompt", "--default")
	if err != nil {
		t.Fatalf("prompt --default: %v", err)
	}
	if strings.TrimSpace(out) != strings.TrimSpace(config.DefaultPrompt) {
		t.Errorf("prompt --default printed %q", out)
	}

	out, err = env.run(t, "prompt")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if strings.TrimSpace(out) != "custom prompt" {
		t.Errorf("prompt printed %q, want configured prompt", out)
	}
}

func TestPromptDefaultIgnoresBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("paths: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) (string, error) {
		cmd := newRootCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--config", path}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("prompt", "--default")
	if err != nil {
		t.Fatalf("prompt --default with broken config: %v", err)
	}
	if strings.TrimSpace(out) != strings.TrimSpace(config.DefaultPrompt) {
		t.Errorf("prompt --default printed %q", out)
	}

	if _, err := run("prompt"); err == nil {
		t.Error("prompt should report the broken config")
	}
}

func TestMissingConfigFileIsAnError(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "list"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestListAndShow(t *testing.T) {
	env := setupCLITestEnv(t, "")
	store := cache.New(filepath.Join(env.outputDir, "analysis"))
	if err := store.Save("/clips/ep2.mp3", "second"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save("/clips/ep1.mp3", "## Summary\n\nfirst episode\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	first, second := strings.Index(out, "ep1.mp3"), strings.Index(out, "ep2.mp3")
	if first < 0 || second < 0 || first > second {
		t.Errorf("list output not ordered ep1, ep2:\n%s", out)
	}

	out, err = env.run(t, "show", "ep1.mp3")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if out != "## Summary\n\nfirst episode\n" {
		t.Errorf("show printed %q", out)
	}

	if _, err := env.run(t, "show", "ep3.mp3"); err == nil {
		t.Error("show of unknown audio should fail")
	}
}

func TestListEmpty(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No analyses stored") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestConvertEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, err := env.run(t, "convert")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "No videos found") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(env.outputDir, "audio")); err != nil {
		t.Errorf("audio dir not created: %v", err)
	}
}

func TestConvertInvalidDirectory(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, err := env.run(t, "convert", filepath.Join(env.baseDir, "missing"))
	if !errors.Is(err, transcoder.ErrInvalidDirectory) {
		t.Errorf("convert error = %v, want ErrInvalidDirectory", err)
	}
}

func TestConvertRespectsWorkspaceLock(t *testing.T) {
	env := setupCLITestEnv(t, "")
	unlock, err := workspace.Lock(env.outputDir)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer unlock()

	if _, err := env.run(t, "convert"); !errors.Is(err, workspace.ErrLocked) {
		t.Errorf("convert error = %v, want ErrLocked", err)
	}
}

func TestAnalyzeWithoutCredentials(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, err := env.run(t, "analyze")
	if !errors.Is(err, config.ErrMissingCredentials) {
		t.Errorf("analyze error = %v, want ErrMissingCredentials", err)
	}
}

func TestDoctorReportsProblems(t *testing.T) {
	env := setupCLITestEnv(t, "ffmpeg:\n  binary_path: needle-missing-ffmpeg\n")

	out, err := env.run(t, "doctor")
	if err == nil {
		t.Fatal("doctor should fail without ffmpeg and credentials")
	}
	for _, want := range []string{"== Dependencies ==", "FFmpeg:", "[ERROR]", "Credentials:", "(missing)"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ansiReset) {
		t.Error("doctor output to a buffer should not be colorized")
	}
}
