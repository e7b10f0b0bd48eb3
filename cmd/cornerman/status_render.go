package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
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

	statusLabelWidth = 16
	statusIndent     = "  "
)

func renderSectionHeader(title string) string {
	heading := fmt.Sprintf("== %s ==", title)
	return heading + "\n" + strings.Repeat("-", len(heading))
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	text := message
	switch kind {
	case statusOK:
		text = "[OK] " + message
		if colorize {
			text = ansiGreen + text + ansiReset
		}
	case statusWarn:
		text = "[WARN] " + message
		if colorize {
			text = ansiYellow + text + ansiReset
		}
	case statusError:
		text = "[ERROR] " + message
		if colorize {
			text = ansiRed + text + ansiReset
		}
	default:
		if colorize {
			text = ansiBlue + text + ansiReset
		}
	}
	return fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", text)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
