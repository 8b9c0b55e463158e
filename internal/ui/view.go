package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 20
	maxBarWidth = 60
)

// barWidth sizes the volume bar to the terminal, within sane bounds.
func barWidth(termWidth int) int {
	w := termWidth - 10
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

func (m Model) renderMain() string {
	st := m.theme.Styles()

	var b strings.Builder

	b.WriteString(st.Title.Render("knurl"))
	b.WriteString("  ")
	b.WriteString(m.renderAddress(st))
	b.WriteString("\n\n")

	b.WriteString(st.Volume.Render(fmt.Sprintf("%3d", m.volume)))
	b.WriteString("  ")
	b.WriteString(m.bar.ViewAs(float64(m.volume) / 100))
	if m.muted {
		b.WriteString("  ")
		b.WriteString(st.MuteBadge.Render("MUTED"))
	}
	b.WriteString("\n\n")

	b.WriteString(st.MutedText.Render(fmt.Sprintf("step %d", m.step)))
	b.WriteString("\n")

	if m.alertActive {
		b.WriteString("\n")
		b.WriteString(st.Alert.Render("! speaker unreachable"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.MutedText.Render("↑/↓ volume · m mute · s step · a address · h help · q quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderAddress(st Styles) string {
	if m.editingAddress {
		return st.Text.Render("speaker: ") + m.addressInput.View()
	}
	if strings.TrimSpace(m.address) == "" {
		return st.MutedText.Render("no speaker configured (press a)")
	}
	return st.Connected.Render(m.address)
}

func (m Model) renderHelp() string {
	st := m.theme.Styles()

	rows := []struct {
		keys, desc string
	}{
		{"↑ / → / +", "volume up one detent"},
		{"↓ / ← / -", "volume down one detent"},
		{"shift+↑ / pgup", "volume up five detents"},
		{"shift+↓ / pgdn", "volume down five detents"},
		{"m / space / enter", "toggle mute"},
		{"s", "cycle step size (1, 2, 5, 10)"},
		{"a", "edit speaker address"},
		{"T", "cycle theme"},
		{"q / ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("knurl keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			st.Text.Render(fmt.Sprintf("%-18s", r.keys)),
			st.MutedText.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(st.MutedText.Render("press any key to close"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
