// Package output provides styled terminal output helpers (success, error,
// warning, pending item formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/marcus/tailor/internal/models"
)

var (
	// Styles
	titleStyle     = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	amountStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	severityStyles = map[models.Severity]lipgloss.Style{
		models.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.SeverityDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// OutputMode determines output format
type OutputMode int

const (
	ModeShort OutputMode = iota
	ModeLong
	ModeJSON
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeRejected     = "rejected"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNetwork      = "network_error"
	ErrCodeAPI          = "api_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	JSONErrorWithDetails(code, message, nil)
}

// JSONErrorWithDetails outputs an error as JSON with additional context
func JSONErrorWithDetails(code, message string, details map[string]interface{}) {
	errObj := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errObj["details"] = details
	}
	data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
	fmt.Println(string(data))
}

// FormatStatus renders a status name as a colored tag
func FormatStatus(name string) string {
	if name == "" {
		name = "Unknown"
	}
	style, ok := severityStyles[models.StatusSeverity(name)]
	if !ok {
		return fmt.Sprintf("[%s]", name)
	}
	return style.Render(fmt.Sprintf("[%s]", name))
}

// StatusBadge returns a status indicator with symbol
// e.g., "○ Pending", "▶ In Progress", "✓ Completed", "✗ Cancelled"
func StatusBadge(s models.Status) string {
	symbols := map[models.Status]string{
		models.StatusPending:    "○",
		models.StatusInProgress: "▶",
		models.StatusCompleted:  "✓",
		models.StatusCancelled:  "✗",
	}
	symbol, ok := symbols[s]
	if !ok {
		symbol = "?"
	}
	style, ok := severityStyles[models.StatusSeverity(s.String())]
	if !ok {
		return fmt.Sprintf("%s %s", symbol, s)
	}
	return style.Render(fmt.Sprintf("%s %s", symbol, s))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats the API returns.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an API date as "02 Jan 2006", "-" when empty, or the
// raw value when unparseable.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("02 Jan 2006")
}

// FormatDue renders a delivery date with its distance from now,
// e.g. "12 Mar 2026 (3 days from now)".
func FormatDue(s string, now time.Time) string {
	t, ok := ParseDate(s)
	if !ok {
		return FormatDate(s)
	}
	return fmt.Sprintf("%s (%s)", t.Format("02 Jan 2006"), humanize.RelTime(t, now, "ago", "from now"))
}

// FormatAmount renders an optional amount with thousands separators
func FormatAmount(v *float64) string {
	if v == nil {
		return "-"
	}
	return "₹" + humanize.FormatFloat("#,###.##", *v)
}

// FormatQty renders an optional quantity
func FormatQty(v *int) string {
	if v == nil {
		return "-"
	}
	return humanize.Comma(int64(*v))
}

// FormatItemShort formats a pending item in one line
func FormatItemShort(item *models.PendingItem) string {
	parts := []string{
		titleStyle.Render(item.Key()),
		item.ProductName,
		subtleStyle.Render(item.CustomerName),
		"due " + FormatDate(item.DeliveryDate),
		FormatStatus(item.Status),
	}
	if item.HasJobOrder() {
		parts = append(parts, subtleStyle.Render("job: "+item.LatestJobOrderStatus()))
	}
	return strings.Join(parts, "  ")
}

// FormatItemLong formats a pending item with its order, customer and
// status trail.
func FormatItemLong(item *models.PendingItem, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", item.Key(), item.ProductName)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Status: %s\n", FormatStatus(item.Status)))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", item.CustomerName))
	if item.Customer != nil && item.Customer.MobileNumber != "" {
		sb.WriteString(fmt.Sprintf("Mobile: %s\n", item.Customer.MobileNumber))
	}
	if item.ProductRef != "" {
		sb.WriteString(fmt.Sprintf("Ref: %s\n", item.ProductRef))
	}
	sb.WriteString(fmt.Sprintf("Delivery: %s\n", FormatDue(item.DeliveryDate, now)))
	if item.TrialDate != "" {
		sb.WriteString(fmt.Sprintf("Trial: %s\n", FormatDate(item.TrialDate)))
	}
	if item.ReceivedDate != "" {
		sb.WriteString(fmt.Sprintf("Received: %s\n", FormatDate(item.ReceivedDate)))
	}
	sb.WriteString(fmt.Sprintf("Qty: ordered %s | delivered %s | cancelled %s\n",
		FormatQty(item.OrderedQty), FormatQty(item.DeliveredQty), FormatQty(item.CancelledQty)))
	sb.WriteString(fmt.Sprintf("Amount: %s", amountStyle.Render(FormatAmount(item.ItemAmount))))
	if item.ItemDiscount != nil && *item.ItemDiscount > 0 {
		sb.WriteString(fmt.Sprintf(" (discount %s)", FormatAmount(item.ItemDiscount)))
	}
	sb.WriteString("\n")

	if o := item.OrderMain; o != nil {
		sb.WriteString(SectionHeader("Order"))
		sb.WriteString(fmt.Sprintf("  %s  ordered %s\n", o.DocNo, FormatDate(o.OrderDate)))
		sb.WriteString(fmt.Sprintf("  total %s | paid %s | due %s\n",
			FormatAmount(o.OrderAmount), FormatAmount(o.AmountPaid), FormatAmount(o.AmountDue)))
	}

	if item.HasJobOrder() {
		sb.WriteString(SectionHeader("Job order"))
		for _, js := range item.JobOrderStatus {
			sb.WriteString(fmt.Sprintf("  - %s", js.StatusName))
			if js.CreatedAt != "" {
				sb.WriteString(subtleStyle.Render("  " + FormatDate(js.CreatedAt)))
			}
			sb.WriteString("\n")
		}
	}

	if len(item.StatusHistory) > 0 {
		sb.WriteString(SectionHeader("Status history"))
		for _, h := range item.StatusHistory {
			line := fmt.Sprintf("  [%s] %s", FormatDate(h.ChangedAt), h.StatusName)
			if h.ChangedBy != "" {
				line += subtleStyle.Render(" by " + h.ChangedBy)
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

// FormatProfile formats the signed-in user's profile
func FormatProfile(p *models.UserProfile) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", p.FirstName, p.LastName)))
	if initials := p.Initials(); initials != "" {
		sb.WriteString(subtleStyle.Render(" (" + initials + ")"))
	}
	sb.WriteString("\n")
	if p.Role != "" || p.Department != "" {
		sb.WriteString(fmt.Sprintf("%s, %s\n", p.Role, p.Department))
	}
	sb.WriteString(fmt.Sprintf("Email: %s\n", p.Email))
	if p.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone: %s\n", p.Phone))
	}
	if p.Gender != "" {
		sb.WriteString(fmt.Sprintf("Gender: %s\n", p.Gender))
	}
	if p.DateOfBirth != nil {
		sb.WriteString(fmt.Sprintf("Born: %s\n", p.DateOfBirth.Format("02 Jan 2006")))
	}
	if p.JoinDate != nil {
		sb.WriteString(fmt.Sprintf("Joined: %s\n", p.JoinDate.Format("02 Jan 2006")))
	}
	return sb.String()
}

// FormatHistoryEntry formats one local history entry
func FormatHistoryEntry(e models.HistoryEntry) string {
	mark := successStyle.Render("✓")
	if !e.OK {
		mark = errorStyle.Render("✗")
	}
	line := fmt.Sprintf("%s %s  %-7s %s", mark, subtleStyle.Render(FormatTimeAgo(e.Timestamp)), e.Action, e.Detail)
	if e.Error != "" {
		line += errorStyle.Render("  " + e.Error)
	}
	return line
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nORDER:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
