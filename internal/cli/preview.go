package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
)

// tilePalette colors tiles in layout order.
var tilePalette = []lipgloss.Color{
	lipgloss.Color("30"),
	lipgloss.Color("61"),
	lipgloss.Color("96"),
	lipgloss.Color("131"),
	lipgloss.Color("65"),
	lipgloss.Color("67"),
	lipgloss.Color("137"),
	lipgloss.Color("103"),
}

var (
	styleEmptyCell = lipgloss.NewStyle().Foreground(colorDim)
	styleStatic    = lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(colorGray)
	styleSelected  = lipgloss.NewStyle().Background(colorYellow).Foreground(lipgloss.Color("16")).Bold(true)
	stylePreview   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)
)

// cellWidth is the number of terminal columns per grid column.
const cellWidth = 2

// previewCells maps every cell of the grid to the item covering it. When
// items overlap the earlier one in layout order wins. Columns beyond cols
// are dropped.
func previewCells(l grid.Layout, cols int) [][]*grid.Item {
	cells := make([][]*grid.Item, l.Height())
	for y := range cells {
		cells[y] = make([]*grid.Item, cols)
	}
	for _, it := range l {
		for y := it.Y; y < it.Bottom(); y++ {
			for x := max(it.X, 0); x < min(it.Right(), cols); x++ {
				if cells[y][x] == nil {
					cells[y][x] = it
				}
			}
		}
	}
	return cells
}

// renderPreview draws the layout as a block grid with each tile's id on its
// first row. The selected tile is highlighted and static tiles are dimmed.
func renderPreview(l grid.Layout, cols int, selected grid.ID) string {
	if cols <= 0 {
		cols = engine.DefaultCols
	}
	index := make(map[*grid.Item]int, len(l))
	for i, it := range l {
		index[it] = i
	}

	cells := previewCells(l, cols)
	if len(cells) == 0 {
		return stylePreview.Render(styleEmptyCell.Render(strings.Repeat("· ", cols)))
	}

	rows := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for x := 0; x < cols; {
			it := row[x]
			if it == nil {
				b.WriteString(styleEmptyCell.Render("· "))
				x++
				continue
			}
			end := x
			for end < cols && row[end] == it {
				end++
			}
			text := strings.Repeat(" ", (end-x)*cellWidth)
			if y == it.Y && x == max(it.X, 0) {
				text = tileLabel(it.ID.String(), (end-x)*cellWidth)
			}
			b.WriteString(tileStyle(it, index[it], selected).Render(text))
			x = end
		}
		rows[y] = b.String()
	}
	return stylePreview.Render(strings.Join(rows, "\n"))
}

// tileLabel fits id into width columns, padding with spaces.
func tileLabel(id string, width int) string {
	r := []rune(id)
	if len(r) > width {
		r = r[:width]
	}
	return string(r) + strings.Repeat(" ", width-len(r))
}

func tileStyle(it *grid.Item, i int, selected grid.ID) lipgloss.Style {
	switch {
	case selected != "" && it.ID == selected:
		return styleSelected
	case it.Static:
		return styleStatic
	}
	return lipgloss.NewStyle().
		Background(tilePalette[i%len(tilePalette)]).
		Foreground(colorWhite)
}
