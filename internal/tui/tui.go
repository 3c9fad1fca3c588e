// Package tui is the terminal browse surface.
//
// The model hosts a [masonry.Grid], a [viewport.Coordinator] and a
// [feed.Feed]. One terminal cell stands for CellWidth × CellHeight layout
// pixels, so the grid works in the same pixel space as any other surface.
// Coordinator callbacks are delivered with Program.Send and run inside
// Update, which keeps every grid mutation on the bubbletea loop.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/preload"
	"github.com/matzehuels/mosaic/pkg/schedule"
	"github.com/matzehuels/mosaic/pkg/viewport"
)

// Default cell geometry in layout pixels.
const (
	DefaultCellWidth  = 10.0
	DefaultCellHeight = 20.0
)

// chromeRows is the header plus the status line.
const chromeRows = 2

// Options configures a Model.
type Options struct {
	Layout masonry.Options
	Timing viewport.Config

	// FrameInterval throttles scroll commits. Zero means 60 Hz.
	FrameInterval time.Duration

	CellWidth  float64
	CellHeight float64

	// Title is shown in the header.
	Title string

	Clock     schedule.Clock
	Preloader *preload.Preloader
	Logger    *log.Logger
}

// Model is the bubbletea model for the browse surface.
type Model struct {
	ctx    context.Context
	feed   *feed.Feed
	grid   *masonry.Grid
	coord  *viewport.Coordinator
	pre    *preload.Preloader
	logger *log.Logger
	opts   Options

	cellW, cellH  float64
	width, height int // terminal cells
	scroll        float64
	sized         bool
	loading       bool
	gen           int // bumped by reset; older page results are stale
	status        string
	lastErr       error

	send    func(tea.Msg)
	pending []tea.Cmd
}

type (
	dispatchMsg struct{ fn func() }
	pageMsg     struct {
		change masonry.Change
		err    error
		gen    int
	}
	preloadMsg struct{ report preload.Report }
)

// New creates a model over f. The model does nothing until it is run by a
// program, or until Update receives a window size.
func New(ctx context.Context, f *feed.Feed, opts Options) *Model {
	opts.Layout = opts.Layout.WithDefaults()
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	if opts.Clock == nil {
		opts.Clock = schedule.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Title == "" {
		opts.Title = "mosaic"
	}

	m := &Model{
		ctx:    ctx,
		feed:   f,
		grid:   masonry.NewGrid(1, opts.Layout),
		pre:    opts.Preloader,
		logger: opts.Logger,
		opts:   opts,
		cellW:  opts.CellWidth,
		cellH:  opts.CellHeight,
	}

	timing := opts.Timing
	timing.ColumnWidth = opts.Layout.ColumnWidth
	m.coord = viewport.New(timing, 1, viewport.Handlers{
		OnScroll:  m.commitScroll,
		OnBottom:  m.reachBottom,
		OnColumns: m.setColumns,
	},
		viewport.WithClock(opts.Clock),
		viewport.WithFrames(schedule.ClockFrames{Clock: opts.Clock, Interval: opts.FrameInterval}),
		viewport.WithDispatch(m.dispatch),
	)
	return m
}

// Run starts a full-screen program for m and blocks until it exits.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	m.send = p.Send
	defer m.coord.Close()
	_, err := p.Run()
	return err
}

// Grid exposes the layout for inspection.
func (m *Model) Grid() *masonry.Grid { return m.grid }

// ScrollTop returns the raw scroll position in layout pixels.
func (m *Model) ScrollTop() float64 { return m.scroll }

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()

	case pageMsg:
		// A load issued before a reset may still have filled the new
		// listing, so the grid always catches up with the feed. Only the
		// current load settles the loading state.
		m.grid.SetItems(m.feed.Items(), msg.change)
		if msg.gen == m.gen {
			m.loading = false
			m.lastErr = msg.err
			if msg.err != nil {
				m.status = "load failed: " + msg.err.Error()
			} else {
				m.status = fmt.Sprintf("%d photos", m.feed.Len())
			}
		}
		if n := msg.change.Count; msg.change.Kind == masonry.ChangeAppend && n > 0 {
			photos := m.feed.Photos()
			m.queue(m.preload(photos[max(len(photos)-n, 0):]))
		}
		m.fillViewport()

	case preloadMsg:
		m.logger.Debug("preloaded", "loaded", msg.report.Loaded, "failed", msg.report.Failed)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.SetContainerHeight(m.viewportHeight())
		px := float64(msg.Width) * m.cellW
		if !m.sized {
			m.sized = true
			m.grid.SetColumnCount(masonry.ColumnCount(px, m.opts.Layout.ColumnWidth))
		}
		m.coord.HandleResize(px)
		m.fillViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.coord.Close()
			return m, tea.Quit
		case "up", "k":
			m.scrollBy(-m.cellH)
		case "down", "j":
			m.scrollBy(m.cellH)
		case "pgup", "b":
			m.scrollBy(-m.viewportHeight())
		case "pgdown", " ", "f":
			m.scrollBy(m.viewportHeight())
		case "home", "g":
			m.scrollTo(0)
		case "end", "G":
			m.scrollTo(m.maxScroll())
		case "r":
			m.reset()
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3 * m.cellH)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3 * m.cellH)
		}
	}
	return m, m.flush()
}

func (m *Model) View() string {
	return render(m)
}

func (m *Model) dispatch(fn func()) {
	if m.send != nil {
		m.send(dispatchMsg{fn: fn})
	}
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) commitScroll(offset float64) {
	m.grid.SetScrollOffset(offset)
}

func (m *Model) reachBottom() {
	m.queue(m.load())
}

func (m *Model) setColumns(n int) {
	if m.grid.SetColumnCount(n) {
		m.logger.Debug("relayout", "columns", n)
		m.scrollTo(min(m.scroll, m.maxScroll()))
	}
}

func (m *Model) load() tea.Cmd {
	if m.loading || m.feed.Done() {
		return nil
	}
	m.loading = true
	m.status = fmt.Sprintf("loading page %d…", m.feed.Page()+1)
	f, ctx, gen := m.feed, m.ctx, m.gen
	return func() tea.Msg {
		change, err := f.LoadNext(ctx)
		return pageMsg{change: change, err: err, gen: gen}
	}
}

func (m *Model) preload(photos []feed.Photo) tea.Cmd {
	if m.pre == nil || len(photos) == 0 {
		return nil
	}
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		u := p.Src.Tiny
		if u == "" {
			u = p.URL
		}
		urls = append(urls, u)
	}
	pre, ctx := m.pre, m.ctx
	return func() tea.Msg {
		return preloadMsg{report: pre.Preload(ctx, urls)}
	}
}

func (m *Model) reset() {
	m.coord.Close()
	change := m.feed.Reset()
	m.grid.SetItems(m.feed.Items(), change)
	m.gen++
	m.loading = false
	m.lastErr = nil
	m.scroll = 0
	m.grid.SetScrollOffset(0)
	m.queue(m.load())
}

// fillViewport reports the current position to the coordinator when the
// content does not yet fill the screen, so the bottom policy keeps loading
// pages until there is something to scroll.
func (m *Model) fillViewport() {
	if !m.sized || m.loading || m.lastErr != nil || m.feed.Done() {
		return
	}
	if m.grid.ContentHeight() <= m.viewportHeight() {
		m.coord.HandleScroll(m.scrollEvent())
	}
}

func (m *Model) scrollBy(dy float64) { m.scrollTo(m.scroll + dy) }

func (m *Model) scrollTo(y float64) {
	m.scroll = math.Max(0, math.Min(y, m.maxScroll()))
	m.coord.HandleScroll(m.scrollEvent())
}

func (m *Model) scrollEvent() viewport.ScrollEvent {
	vh := m.viewportHeight()
	return viewport.ScrollEvent{
		ScrollTop:    m.scroll,
		OffsetHeight: vh,
		ScrollHeight: math.Max(m.grid.ContentHeight(), vh),
	}
}

func (m *Model) maxScroll() float64 {
	return math.Max(0, m.grid.ContentHeight()-m.viewportHeight())
}

func (m *Model) viewportHeight() float64 {
	return float64(max(m.height-chromeRows, 0)) * m.cellH
}
