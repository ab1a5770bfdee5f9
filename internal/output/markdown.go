package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/marcus/tailor/internal/models"
	"golang.org/x/term"
)

// narrowest wrap glamour is asked for; tables below this are unreadable
const minWrap = 20

// TerminalWidth reports the width of stdout, then $COLUMNS, then fallback.
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	if fallback <= 0 {
		return 80
	}
	return fallback
}

// RenderMarkdown wraps text at width. An empty style picks dark or light
// from the terminal background; pass a fixed one ("dark", "notty") while a
// TUI owns the terminal.
func RenderMarkdown(text string, width int, style string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(max(width, minWrap)))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}

	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// MeasurementMarkdown lays a measurement sheet out as a two-column table.
func MeasurementMarkdown(sheet *models.MeasurementSheet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Measurements for item %s\n\n", sheet.ItemID)
	if sheet.Date != "" {
		fmt.Fprintf(&sb, "Taken %s\n\n", FormatDate(sheet.Date))
	}
	if len(sheet.Measurements) == 0 {
		sb.WriteString("_No measurements recorded._\n")
		return sb.String()
	}

	sb.WriteString("| Measurement | Value |\n|---|---|\n")
	for _, m := range sheet.Measurements {
		v := strings.TrimSpace(m.Value)
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(m.Name), escapeCell(v))
	}
	return sb.String()
}

// RenderMeasurements renders sheet through RenderMarkdown.
func RenderMeasurements(sheet *models.MeasurementSheet, width int, style string) (string, error) {
	return RenderMarkdown(MeasurementMarkdown(sheet), width, style)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
