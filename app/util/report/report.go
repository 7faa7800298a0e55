package report

import (
	"fmt"
	"strings"
	"time"

	"semlog/app/event"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// Summary describes a finished episode for the terminal.
type Summary struct {
	EpisodeID string
	Written   bool
	Counts    map[event.Kind]int
	Duration  float64
}

func NewSummary(episodeID string, written bool, events []event.Event) Summary {
	s := Summary{
		EpisodeID: episodeID,
		Written:   written,
		Counts:    make(map[event.Kind]int),
	}

	for _, ev := range events {
		s.Counts[ev.Kind()]++
		s.Duration = max(s.Duration, ev.EndTime)
	}

	return s
}

func (s Summary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

func (s Summary) Render() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("EPISODE " + s.EpisodeID))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("  ─────────────────────────────────────"))
	sb.WriteString("\n")

	for _, kind := range event.Kinds() {
		n, ok := s.Counts[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-20s", kind.String()+":")), titleStyle.Render(fmt.Sprint(n)))
	}

	fmt.Fprintf(&sb, "  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-20s", "Events:")), titleStyle.Render(fmt.Sprint(s.Total())))
	fmt.Fprintf(&sb, "  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-20s", "Duration:")), titleStyle.Render(fmt.Sprintf("%gs", s.Duration)))
	sb.WriteString(mutedStyle.Render("  ─────────────────────────────────────"))
	sb.WriteString("\n")

	if s.Written {
		sb.WriteString(successStyle.Render("  ✓ Episode written"))
	} else {
		sb.WriteString(accentStyle.Render("  ✗ Episode was not written"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// Progress creates a progress bar for feeding signals.
func Progress(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
