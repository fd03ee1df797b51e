package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"minkafka/internal/events"
	"minkafka/internal/orchestrator"
	"minkafka/internal/services"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
	now     func() time.Time
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) *TableFormatter {
	return &TableFormatter{options: options}
}

// FormatStatus renders one row per service followed by the controls line.
func (f *TableFormatter) FormatStatus(status orchestrator.Status) (string, error) {
	t := f.createTable()
	t.AppendHeader(table.Row{
		f.header("SERVICE"),
		f.header("STATE"),
		f.header("SINCE"),
		f.header("PID"),
		f.header("LINES"),
		f.header("LAST ERROR"),
	})

	for _, svc := range status.Services {
		pid := "-"
		if svc.Pid > 0 {
			pid = fmt.Sprintf("%d", svc.Pid)
		}
		t.AppendRow(table.Row{
			svc.Name,
			f.colorState(svc.State),
			f.since(svc.Since),
			pid,
			svc.OutputLines,
			truncate(firstLine(svc.LastError), 60),
		})
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if status.Sequence != orchestrator.SequenceIdle {
		fmt.Fprintf(&b, "%s %s\n", f.paint(text.FgHiBlue, "Sequence:"), status.Sequence)
	}
	controls, _ := f.FormatControls(status.Controls)
	b.WriteString(controls)
	return b.String(), nil
}

// FormatControls renders the four caller-facing flags on one line.
func (f *TableFormatter) FormatControls(c orchestrator.ControlsSnapshot) (string, error) {
	parts := []string{
		f.control("start", c.Start),
		f.control("stop", c.Stop),
		f.control("topic", c.CreateTopic),
		f.control("send", c.Send),
	}
	return fmt.Sprintf("%s %s\n", f.paint(text.FgHiBlue, "Controls:"), strings.Join(parts, "  ")), nil
}

// FormatAlert renders an alert the way the shell and `up` print it.
func (f *TableFormatter) FormatAlert(alert events.Alert) string {
	icon, color := "ℹ", text.FgHiGreen
	if alert.Type == events.EventTypeWarning {
		icon, color = "⚠", text.FgHiYellow
	}
	return fmt.Sprintf("%s %s", f.paint(color, icon), alert.Message)
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(s string) string {
	return f.paint(text.FgHiCyan, s)
}

func (f *TableFormatter) control(name string, enabled bool) string {
	if enabled {
		return f.paint(text.FgHiGreen, name+" ✓")
	}
	return f.paint(text.FgHiBlack, name+" ✗")
}

func (f *TableFormatter) colorState(state services.ServiceState) string {
	label := services.DisplayStatus(state)
	switch state {
	case services.StateRunning:
		return f.paint(text.FgHiGreen, label)
	case services.StateFailed:
		return f.paint(text.FgHiRed, label)
	case services.StateStarting, services.StateStopping:
		return f.paint(text.FgHiYellow, label)
	default:
		return label
	}
}

func (f *TableFormatter) since(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	return FormatAge(now().Sub(t)) + " ago"
}

func (f *TableFormatter) paint(color text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return color.Sprint(s)
}
