package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Progress draws a single-line progress bar for a texture batch.
type Progress struct {
	mu        sync.Mutex
	output    io.Writer
	startTime time.Time
	enabled   bool

	total     int
	completed int
	failed    int
}

// NewProgress creates a tracker for total jobs. A disabled tracker only
// counts; it never writes.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records pool progress. It has the ProgressFunc signature.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	line := p.line()
	p.mu.Unlock()

	if p.enabled {
		fmt.Fprint(p.output, line)
	}
}

// Callback returns a ProgressFunc suitable for use with Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Done prints the final bar followed by a newline.
func (p *Progress) Done() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	line := p.line()
	p.mu.Unlock()
	fmt.Fprintln(p.output, line)
}

// Summary describes the finished batch.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)
	return fmt.Sprintf("Rendered %d/%d textures (%d failed) in %s (%.1f textures/sec)",
		p.completed-p.failed, p.total, p.failed, formatDuration(elapsed), rate(p.completed, elapsed))
}

// line renders the bar. Callers hold p.mu.
func (p *Progress) line() string {
	elapsed := time.Since(p.startTime)

	filled := 0
	if p.total > 0 {
		filled = p.completed * barWidth / p.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var b strings.Builder
	fmt.Fprintf(&b, "\r[%s] %d/%d textures", bar, p.completed, p.total)
	if p.failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", p.failed)
	}

	r := rate(p.completed, elapsed)
	fmt.Fprintf(&b, " - %.1f textures/sec", r)
	switch {
	case p.completed >= p.total:
		fmt.Fprintf(&b, " - Done in %s", formatDuration(elapsed))
	case r > 0:
		eta := time.Duration(float64(p.total-p.completed) / r * float64(time.Second))
		fmt.Fprintf(&b, " - ETA: %s", formatDuration(eta))
	}

	// Pad to clear previous line content
	b.WriteString("          ")
	return b.String()
}

func rate(completed int, elapsed time.Duration) float64 {
	if completed == 0 || elapsed <= 0 {
		return 0
	}
	return float64(completed) / elapsed.Seconds()
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
