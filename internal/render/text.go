// Package render draws rack views and chassis views for terminal output and exports
// the rack topology as a graph.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metal-toolbox/rackview/internal/model"
)

const (
	// cellWidth is the width of an elevation row label cell.
	cellWidth = 36

	emptyCell   = "·"
	bladeCell   = "██"
	noSlotCell  = "··"
	colorFaint  = "8"
	colorLabel  = "#FFFFFF"
	slotPadding = 1
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	rulerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFaint))
	emptyStyle = lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color(colorFaint))
	focusStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// RackView returns the rack elevation as text, top unit first with the unit ruler on
// both sides. The chassis detail view, when set, is drawn to the right of the rack.
func RackView(view model.RackView) string {
	lines := []string{titleStyle.Render(view.Title)}

	if len(view.Ruler) == 0 {
		lines = append(lines, rulerStyle.Render("(no units)"))
		return strings.Join(lines, "\n")
	}

	rowAt := unitIndex(view.Rows)
	width := len(strconv.Itoa(view.Ruler[len(view.Ruler)-1]))

	for i := len(view.Ruler) - 1; i >= 0; i-- {
		unit := view.Ruler[i]
		ruler := rulerStyle.Render(fmt.Sprintf("%*d", width, unit))

		lines = append(lines, ruler+" │"+unitCell(rowAt, unit)+"│ "+ruler)
	}

	rack := strings.Join(lines, "\n")

	if view.Detail == nil {
		return rack
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rack, "   ", ChassisView(*view.Detail))
}

// unitIndex maps each unit to the row covering it.
func unitIndex(rows model.Elevation) map[int]model.UnitRow {
	index := make(map[int]model.UnitRow, rows.Units())

	for _, row := range rows {
		for u := row.Unit; u < row.Unit+row.Weight(); u++ {
			index[u] = row
		}
	}

	return index
}

// unitCell returns the cell drawn for the unit, the label of an occupied row is drawn
// on its top unit.
func unitCell(rowAt map[int]model.UnitRow, unit int) string {
	row, exists := rowAt[unit]
	if !exists || !row.Occupied() {
		return emptyStyle.Render(strings.Repeat(emptyCell, cellWidth))
	}

	text := ""
	if unit == row.Unit+row.Height-1 {
		text = truncate(row.Label, cellWidth)
	}

	return lipgloss.NewStyle().
		Width(cellWidth).
		Foreground(lipgloss.Color(colorLabel)).
		Background(lipgloss.Color(row.Color)).
		Render(text)
}

// ChassisView returns the chassis slot grid as text, slot numbers mirrored above and
// below the grid and the occupied slots listed below it.
func ChassisView(view model.ChassisView) string {
	labels := slotLabels(view.Labels)

	cells := make([]string, 0, len(view.Slots))
	for _, slot := range view.Slots {
		cells = append(cells, slotCell(slot))
	}

	grid := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(view.BorderColor)).
		Render(lipgloss.JoinVertical(lipgloss.Left, labels, strings.Join(cells, ""), labels))

	lines := []string{titleStyle.Render(strings.TrimSpace(view.Label)), grid}

	for _, slot := range view.Slots {
		if !slot.Occupied {
			continue
		}

		lines = append(lines, fmt.Sprintf("%2d  %s", slot.Index, strings.ReplaceAll(slot.Tooltip, "\n", ",")))
	}

	return strings.Join(lines, "\n")
}

func slotLabels(labels []model.SlotLabel) string {
	var b strings.Builder

	for _, label := range labels {
		text := lipgloss.NewStyle().Width(2).Align(lipgloss.Right).Render(strconv.Itoa(label.Index))
		if label.Focused {
			text = focusStyle.Render(text)
		}

		b.WriteString(lipgloss.NewStyle().PaddingRight(slotPadding).Render(text))
	}

	return b.String()
}

func slotCell(slot model.Slot) string {
	style := lipgloss.NewStyle().PaddingRight(slotPadding)

	if !slot.Occupied {
		return style.Foreground(lipgloss.Color(colorFaint)).Render(noSlotCell)
	}

	return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color(slot.Color)).Render(bladeCell))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}

	return string(r[:width-1]) + "…"
}
