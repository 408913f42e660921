package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeading = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

// RenderText 把列表渲染为终端文本
func RenderText(r Rendered) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render(r.Heading))
	b.WriteString("\n")
	if r.Error != "" {
		b.WriteString(styleError.Render(r.Error))
		b.WriteString("\n")
	}
	if r.Table == nil {
		if r.Notice != "" {
			b.WriteString(styleDim.Render(r.Notice))
			b.WriteString("\n")
		}
		return b.String()
	}

	rows := make([][]string, len(r.Table.Rows))
	for i, row := range r.Table.Rows {
		rows[i] = row.Cells
	}
	b.WriteString(renderTable(r.Table.Headers, rows))
	b.WriteString(styleDim.Render(itemsLine(len(rows), r.TotalItems)))
	b.WriteString("\n")
	return b.String()
}

func itemsLine(shown, total int) string {
	if total < shown {
		total = shown
	}
	return fmt.Sprintf("Showing %d of %d items", shown, total)
}

func renderTable(headers []string, rows [][]string) string {
	const colGap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &styleHeader)
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	writeRow(seps, &styleDim)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
