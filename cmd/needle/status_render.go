package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nguyentantai21042004/needle-flow/internal/deps"
	"github.com/nguyentantai21042004/needle-flow/internal/processor"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 18

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// paint wraps s in the kind's colour when colorize is set.
func paint(kind statusKind, s string, colorize bool) string {
	if !colorize {
		return s
	}
	return statusStyles[kind].color + s + ansiReset
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + statusStyles[kind].label + "]"
	if message != "" {
		status += " " + message
	}
	return paint(kind, fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", status), colorize)
}

func resultKind(s transcoder.Status) statusKind {
	switch s {
	case transcoder.StatusConverted:
		return statusOK
	case transcoder.StatusNoAudio:
		return statusWarn
	case transcoder.StatusFailed:
		return statusError
	default:
		return statusInfo
	}
}

func outcomeKind(s processor.OutcomeStatus) statusKind {
	switch s {
	case processor.OutcomeAnalyzed:
		return statusOK
	case processor.OutcomeFailed:
		return statusError
	default:
		return statusInfo
	}
}

func renderDependency(s deps.Status, colorize bool) string {
	if !s.Available {
		return renderStatusLine(s.Name, statusError, s.Detail, colorize)
	}
	return renderStatusLine(s.Name, statusOK, s.Command, colorize)
}

// renderDirStatus warns about missing directories; commands create them on demand.
func renderDirStatus(label, dir string, colorize bool) string {
	if dirExists(dir) {
		return renderStatusLine(label, statusOK, dir, colorize)
	}
	return renderStatusLine(label, statusWarn, dir+" (missing)", colorize)
}

func renderSectionHeader(title string, kind statusKind, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(kind, line, colorize), paint(kind, rule, colorize)}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
