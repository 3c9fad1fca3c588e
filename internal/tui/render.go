package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	colorCyan = lipgloss.Color("36")
	colorRed  = lipgloss.Color("167")
	colorDim  = lipgloss.Color("240")
	colorGray = lipgloss.Color("245")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus = lipgloss.NewStyle().Foreground(colorGray)
	styleError  = lipgloss.NewStyle().Foreground(colorRed)

	styleBlankTile = lipgloss.NewStyle().Background(colorDim).Foreground(lipgloss.Color("255"))
)

const keyHelp = "↑/↓ scroll  pgup/pgdn page  g/G top/end  r reload  q quit"

// canvas is a grid of terminal cells, each owned by at most one tile.
type canvas struct {
	w, h  int
	owner []int
	text  []rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, owner: make([]int, w*h), text: make([]rune, w*h)}
	for i := range c.owner {
		c.owner[i] = -1
		c.text[i] = ' '
	}
	return c
}

func (c *canvas) fill(owner, x0, y0, x1, y1 int) {
	x0, x1 = max(x0, 0), min(x1, c.w)
	y0, y1 = max(y0, 0), min(y1, c.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.owner[y*c.w+x] = owner
		}
	}
}

// write places s at (x, y), clipped to width cells.
func (c *canvas) write(x, y, width int, s string) {
	if y < 0 || y >= c.h {
		return
	}
	i := 0
	for _, r := range s {
		if i >= width || x+i >= c.w {
			return
		}
		if x+i >= 0 {
			c.text[y*c.w+x+i] = r
		}
		i++
	}
}

func (c *canvas) lines(styles []lipgloss.Style) []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		row := y * c.w
		for x := 0; x < c.w; {
			o := c.owner[row+x]
			end := x + 1
			for end < c.w && c.owner[row+end] == o {
				end++
			}
			seg := string(c.text[row+x : row+end])
			if o < 0 {
				b.WriteString(seg)
			} else {
				b.WriteString(styles[o].Render(seg))
			}
			x = end
		}
		out[y] = b.String()
	}
	return out
}

func render(m *Model) string {
	if m.width <= 0 || m.height <= 0 {
		return styleDim.Render("starting…")
	}

	body := m.body()
	header := styleTitle.Render(" "+m.opts.Title+" ") + styleDim.Render(keyHelp)
	clip := lipgloss.NewStyle().MaxWidth(m.width)

	lines := make([]string, 0, m.height)
	lines = append(lines, clip.Render(header))
	lines = append(lines, body...)
	lines = append(lines, clip.Render(m.statusLine()))
	return strings.Join(lines, "\n")
}

// body draws the visible tiles at the committed scroll offset.
func (m *Model) body() []string {
	rows := max(m.height-chromeRows, 0)
	c := newCanvas(m.width, rows)
	if rows == 0 {
		return nil
	}

	offset := m.grid.ScrollOffset()
	tileW := max(int(m.grid.Options().ColumnWidth/m.cellW), 1)
	visible := m.grid.Visible()
	styles := make([]lipgloss.Style, len(visible))

	for k, v := range visible {
		x0 := int(math.Floor(v.Position.Left / m.cellW))
		y0 := int(math.Floor((v.Position.Top - offset) / m.cellH))
		y1 := max(int(math.Floor((v.Position.Bottom()-offset)/m.cellH)), y0+1)
		c.fill(k, x0, y0, x0+tileW, y1)

		styles[k] = styleBlankTile
		photo, ok := m.feed.Photo(v.Index)
		if !ok {
			continue
		}
		styles[k] = tileStyle(photo.AvgColor)
		c.write(x0+1, y0, tileW-2, photo.Photographer)
		if y1-y0 > 1 {
			c.write(x0+1, y0+1, tileW-2, fmt.Sprintf("#%d %d×%d", photo.ID, photo.Width, photo.Height))
		}
	}
	return c.lines(styles)
}

func (m *Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d photos", m.feed.Len()),
		fmt.Sprintf("page %d", m.feed.Page()),
		fmt.Sprintf("%d cols", m.grid.Columns()),
		fmt.Sprintf("%.0f/%.0fpx", m.grid.ScrollOffset(), m.grid.ContentHeight()),
	}
	switch {
	case m.loading:
		parts = append(parts, "loading…")
	case m.feed.Done():
		parts = append(parts, "end")
	}
	line := styleStatus.Render(" " + strings.Join(parts, " · "))
	if m.lastErr != nil {
		line += "  " + styleError.Render(m.status)
	}
	return line
}

// tileStyle paints a tile in the photo's average color with a readable
// foreground.
func tileStyle(avg string) lipgloss.Style {
	bg, err := colorful.Hex(avg)
	if err != nil {
		return styleBlankTile
	}
	fg := lipgloss.Color("255")
	if l, _, _ := bg.Lab(); l > 0.6 {
		fg = lipgloss.Color("0")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())).Foreground(fg)
}
