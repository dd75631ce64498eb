package output

import (
	"fmt"
	"io"
	"strings"
)

// Progress reports a batch of sequential steps as n/N with a bar.
type Progress struct {
	w       io.Writer
	title   string
	total   int
	current int
	width   int
}

// NewProgress creates a progress reporter for total steps.
func NewProgress(w io.Writer, title string, total int) *Progress {
	return &Progress{
		w:     w,
		title: title,
		total: total,
		width: 30,
	}
}

// Step marks the start of the next step, labelled by name.
func (p *Progress) Step(name string) {
	if p.current < p.total {
		p.current++
	}
	p.render(name)
}

// Finish ends the progress line.
func (p *Progress) Finish() {
	fmt.Fprintln(p.w)
}

func (p *Progress) render(name string) {
	filled := 0
	if p.total > 0 {
		filled = p.width * p.current / p.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Fprintf(p.w, "\r%s [%s] %d/%d %s\033[K", p.title, bar, p.current, p.total, name)
}
