package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes human-oriented output, coloured only when out is a terminal.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
	width   int
}

// NewPrinter detects colour support and width from out.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{out: out, profile: termenv.Ascii, width: 80}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.profile = termenv.ColorProfile()
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			p.width = w
		}
	}
	return p
}

// NewPlainPrinter never emits escape sequences.
func NewPlainPrinter(out io.Writer, width int) *Printer {
	return &Printer{out: out, profile: termenv.Ascii, width: width}
}

func (p *Printer) style(s, hex string) termenv.Style {
	return p.profile.String(s).Foreground(p.profile.Color(hex))
}

func (p *Printer) strong(s, hex string) termenv.Style {
	st := p.style(s, hex)
	if p.profile == termenv.Ascii {
		return st
	}
	return st.Bold()
}

// PrintBanner outputs the pendant banner.
func (p *Printer) PrintBanner() {
	lines := []struct{ text, colour string }{
		{"                       _             _   ", "#818cf8"},
		{"  _ __   ___ _ __   __| | __ _ _ __ | |_ ", "#a78bfa"},
		{" | '_ \\ / _ \\ '_ \\ / _` |/ _` | '_ \\| __|", "#c084fc"},
		{" | |_) |  __/ | | | (_| | (_| | | | | |_ ", "#e879f9"},
		{" | .__/ \\___|_| |_|\\__,_|\\__,_|_| |_|\\__|", "#f472b6"},
		{" |_|                                     ", "#fb7185"},
	}

	fmt.Fprintln(p.out)
	for _, l := range lines {
		fmt.Fprintln(p.out, p.style(l.text, l.colour))
	}
	fmt.Fprintln(p.out)
}

func (p *Printer) rule() string {
	w := p.width
	if w > 60 {
		w = 60
	}
	return strings.Repeat("─", w)
}
