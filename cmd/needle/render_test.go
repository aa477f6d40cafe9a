package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nguyentantai21042004/needle-flow/internal/deps"
	"github.com/nguyentantai21042004/needle-flow/internal/processor"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

func TestRenderTable(t *testing.T) {
	columns := []column{{"Video", text.AlignLeft}, {"Status", text.AlignRight}}
	out := renderTable(columns, [][]string{{"a.mp4", "converted"}, {"b.mp4"}}, "2 videos")
	for _, want := range []string{"Video", "a.mp4", "converted", "b.mp4", "2 videos"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2 VIDEOS") {
		t.Errorf("footer should keep its case:\n%s", out)
	}
	if renderTable(nil, nil, "") != "" {
		t.Error("table without columns should render empty")
	}
}

func TestRenderStatusLine(t *testing.T) {
	tests := []struct {
		name     string
		kind     statusKind
		message  string
		colorize bool
		want     string
	}{
		{"plain ok", statusOK, "ffmpeg", false, "[OK] ffmpeg"},
		{"no message", statusWarn, "", false, "[WARN]"},
		{"colored error", statusError, "boom", true, ansiRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderStatusLine("Label", tt.kind, tt.message, tt.colorize)
			if !strings.Contains(got, tt.want) {
				t.Errorf("renderStatusLine() = %q, want it to contain %q", got, tt.want)
			}
			if !tt.colorize && strings.Contains(got, ansiReset) {
				t.Errorf("uncolored line contains escape codes: %q", got)
			}
		})
	}
}

func TestResultAndOutcomeKinds(t *testing.T) {
	results := map[transcoder.Status]statusKind{
		transcoder.StatusConverted: statusOK,
		transcoder.StatusExisting:  statusInfo,
		transcoder.StatusNoAudio:   statusWarn,
		transcoder.StatusFailed:    statusError,
	}
	for status, want := range results {
		if got := resultKind(status); got != want {
			t.Errorf("resultKind(%v) = %v, want %v", status, got, want)
		}
	}

	outcomes := map[processor.OutcomeStatus]statusKind{
		processor.OutcomeAnalyzed: statusOK,
		processor.OutcomeSkipped:  statusInfo,
		processor.OutcomeFailed:   statusError,
	}
	for status, want := range outcomes {
		if got := outcomeKind(status); got != want {
			t.Errorf("outcomeKind(%v) = %v, want %v", status, got, want)
		}
	}
}

func TestRenderDependency(t *testing.T) {
	ok := renderDependency(deps.Status{Name: "FFmpeg", Command: "ffmpeg", Available: true}, false)
	if !strings.Contains(ok, "[OK] ffmpeg") {
		t.Errorf("available dependency rendered as %q", ok)
	}
	missing := renderDependency(deps.Status{Name: "FFprobe", Detail: `binary "ffprobe" not found`}, false)
	if !strings.Contains(missing, "[ERROR]") || !strings.Contains(missing, "not found") {
		t.Errorf("missing dependency rendered as %q", missing)
	}
}

func TestRenderConvertReport(t *testing.T) {
	report := processor.ConvertReport{Results: []transcoder.Result{
		{Video: "/v/talk.mp4", AudioPath: "/a/talk.mp3", Status: transcoder.StatusConverted, BitrateKbps: 192},
		{Video: "/v/silent.mp4", Status: transcoder.StatusNoAudio},
		{Video: "/v/bad.mp4", Status: transcoder.StatusFailed, Err: errors.New("ffmpeg exploded")},
	}}

	out := renderConvertReport(report, false)
	for _, want := range []string{"talk.mp3", "192k", "no audio", "ffmpeg exploded", "1 converted, 0 existing, 1 without audio, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ansiReset) {
		t.Errorf("uncolored report contains escape codes:\n%s", out)
	}

	colored := renderConvertReport(report, true)
	if !strings.Contains(colored, ansiYellow) || !strings.Contains(colored, ansiRed) {
		t.Errorf("no-audio and failed statuses should be colored:\n%s", colored)
	}
}

func TestPrintOutcomes(t *testing.T) {
	report := processor.AnalyzeReport{Outcomes: []processor.Outcome{
		{AudioFile: "/a/ep1.mp3", Status: processor.OutcomeAnalyzed, Content: "fresh\n"},
		{AudioFile: "/a/ep2.mp3", Status: processor.OutcomeSkipped, Content: "cached"},
		{AudioFile: "/a/ep3.mp3", Status: processor.OutcomeFailed, Err: errors.New("quota")},
	}}

	var b strings.Builder
	printOutcomes(&b, report, false)
	out := b.String()
	for _, want := range []string{"ep1.mp3 (analyzed)", "fresh", "cached", "[ERROR] quota", "1 analyzed, 1 skipped, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("outcomes missing %q:\n%s", want, out)
		}
	}
}
