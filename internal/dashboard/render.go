// Package dashboard renders a poller view as text for the watch command.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/vesaa/sysdash/internal/models"
	"github.com/vesaa/sysdash/internal/poller"
)

const (
	colorCPU   = lipgloss.Color("#667eea")
	colorRAM   = lipgloss.Color("#48bb78")
	colorDisk  = lipgloss.Color("#ed8936")
	colorTemp  = lipgloss.Color("#e53e3e")
	colorMuted = lipgloss.Color("#86868b")
	colorError = lipgloss.Color("#d73a49")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(13)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
)

// sparkBlocks map 0-100% onto eight bar heights.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Render draws v. An error hides stale readings; no snapshot yet shows a
// loading line.
func Render(v poller.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Server Metrics"))
	b.WriteString("\n")

	switch {
	case v.Err != "":
		b.WriteString(errorStyle.Render("API error: " + v.Err))
		b.WriteString("\n")
		return b.String()
	case v.Current == nil:
		b.WriteString(mutedStyle.Render("Loading…"))
		b.WriteString("\n")
		return b.String()
	}

	s := v.Current
	b.WriteString(mutedStyle.Render("Last updated: " + s.At.Local().Format("2006-01-02 15:04:05")))
	b.WriteString("\n\n")

	stat(&b, "CPU Usage", colorCPU, percent(s.CPU.UsagePercent), "")
	stat(&b, "RAM Usage", colorRAM, percent(s.RAM.UsagePercent),
		fmt.Sprintf("%s / %s", humanize.IBytes(s.RAM.UsedBytes), humanize.IBytes(s.RAM.TotalBytes)))
	if s.Disk != nil {
		stat(&b, "Disk Usage", colorDisk, percent(s.Disk.UsagePercent),
			fmt.Sprintf("%s / %s on %s", humanize.IBytes(s.Disk.UsedBytes), humanize.IBytes(s.Disk.TotalBytes), s.Disk.Mount))
	} else {
		stat(&b, "Disk Usage", colorDisk, "N/A", "")
	}
	if c := s.Temperature.Celsius; c != nil {
		stat(&b, "Temperature", colorTemp, strconv.FormatFloat(*c, 'f', -1, 64)+"°C", "")
	} else {
		stat(&b, "Temperature", colorTemp, "N/A", "")
	}

	if len(v.History) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Last %d readings (%s – %s)",
			len(v.History), v.History[0].Time, v.History[len(v.History)-1].Time)))
		b.WriteString("\n")
		cpu, ram := series(v.History)
		b.WriteString(labelStyle.Render("CPU") + lipgloss.NewStyle().Foreground(colorCPU).Render(Sparkline(cpu)) + "\n")
		b.WriteString(labelStyle.Render("RAM") + lipgloss.NewStyle().Foreground(colorRAM).Render(Sparkline(ram)) + "\n")
	}
	return b.String()
}

func stat(b *strings.Builder, title string, color lipgloss.Color, value, subtitle string) {
	b.WriteString(labelStyle.Render(title))
	b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(value))
	if subtitle != "" {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(subtitle))
	}
	b.WriteString("\n")
}

// percent formats like the web dashboard: 40 → "40%", 12.3 → "12.3%".
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func series(h []models.HistoryEntry) (cpu, ram []float64) {
	cpu = make([]float64, len(h))
	ram = make([]float64, len(h))
	for i, e := range h {
		cpu[i] = e.CPU
		ram[i] = e.RAM
	}
	return cpu, ram
}

// Sparkline renders percentages (0-100) as block characters, clamping
// out-of-range values.
func Sparkline(values []float64) string {
	out := make([]rune, len(values))
	top := len(sparkBlocks) - 1
	for i, v := range values {
		idx := int(v / 100 * float64(top))
		if idx < 0 {
			idx = 0
		}
		if idx > top {
			idx = top
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}
