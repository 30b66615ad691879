package viz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/spiralsim/internal/playback"
	"github.com/san-kum/spiralsim/internal/spiral"
)

// SnapshotMsg carries a controller snapshot into the Bubble Tea loop.
type SnapshotMsg struct {
	playback.Snapshot
	source *playback.Controller
}

// Player renders one playback session and forwards keys to its controller.
type Player struct {
	ctrl        *playback.Controller
	snap        playback.Snapshot
	updates     chan playback.Snapshot
	unsubscribe func()
	keys        keyMap
	theme       Theme
	st          styles
	title       string
	showHelp    bool
	embedded    bool
	closeOnce   *sync.Once
}

// NewPlayer subscribes to ctrl. The player closes ctrl when the user quits.
func NewPlayer(ctrl *playback.Controller, theme Theme, title string) Player {
	updates := make(chan playback.Snapshot, 1)
	unsubscribe := ctrl.Subscribe(func(s playback.Snapshot) {
		// latest wins; the view only needs the newest state
		select {
		case updates <- s:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- s:
			default:
			}
		}
	})
	return Player{
		ctrl:        ctrl,
		snap:        ctrl.Snapshot(),
		updates:     updates,
		unsubscribe: unsubscribe,
		keys:        defaultKeys(),
		theme:       theme,
		st:          newStyles(theme),
		title:       title,
		closeOnce:   new(sync.Once),
	}
}

func waitForSnapshot(ctrl *playback.Controller, ch <-chan playback.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: s, source: ctrl}
	}
}

func (p Player) Init() tea.Cmd {
	return waitForSnapshot(p.ctrl, p.updates)
}

func (p Player) Snapshot() playback.Snapshot { return p.snap }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		if msg.source != p.ctrl {
			return p, nil
		}
		p.observe(msg.Snapshot)
		return p, waitForSnapshot(p.ctrl, p.updates)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p Player) handleKey(msg tea.KeyMsg) (Player, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Quit):
		p.Close()
		return p, tea.Quit
	case key.Matches(msg, p.keys.Start):
		p.ctrl.Start()
	case key.Matches(msg, p.keys.Pause):
		p.ctrl.PauseResume()
	case key.Matches(msg, p.keys.Back):
		p.ctrl.BackStep()
	case key.Matches(msg, p.keys.Step):
		p.ctrl.Tick()
	case key.Matches(msg, p.keys.Replay):
		p.ctrl.Replay()
	case key.Matches(msg, p.keys.Reset):
		p.ctrl.Reset()
	case key.Matches(msg, p.keys.Theme):
		p.theme = NextTheme(p.theme)
		p.st = newStyles(p.theme)
		return p, nil
	case key.Matches(msg, p.keys.Help):
		p.showHelp = !p.showHelp
		return p, nil
	default:
		return p, nil
	}
	p.observe(p.ctrl.Snapshot())
	return p, nil
}

// observe keeps the newest snapshot; a queued one may be older than a
// snapshot read right after a key press.
func (p *Player) observe(s playback.Snapshot) {
	if s.Seq >= p.snap.Seq {
		p.snap = s
	}
}

// Close detaches from the controller, stops its timer and releases any
// pending waitForSnapshot. Safe to call more than once.
func (p Player) Close() {
	p.closeOnce.Do(func() {
		p.unsubscribe()
		close(p.updates)
		p.ctrl.Close()
	})
}

func (p Player) statusLabel() string {
	switch p.snap.State {
	case playback.Running:
		return p.st.running.Render("● RUNNING")
	case playback.Paused:
		return p.st.paused.Render("‖ PAUSED")
	case playback.Completed:
		return p.st.done.Render("✓ COMPLETED")
	default:
		return p.st.value.Render("○ IDLE")
	}
}

// pauseLabel mirrors the toggle button: it offers Resume while paused.
func (p Player) pauseLabel() string {
	if p.snap.State == playback.Paused {
		return "resume"
	}
	return "pause"
}

func (p Player) renderGrid() string {
	rows := make([]string, 0, p.snap.Rows)
	for r := 0; r < p.snap.Rows; r++ {
		cells := make([]string, 0, p.snap.Cols)
		for c := 0; c < p.snap.Cols; c++ {
			at := spiral.Coord{Row: r, Col: c}
			text := fmt.Sprintf("%d", p.snap.Values[r][c])
			switch {
			case p.snap.IsActive(at):
				cells = append(cells, p.st.active.Render(text))
			case p.snap.IsVisited(at):
				cells = append(cells, p.st.visited.Render(text))
			default:
				cells = append(cells, p.st.cell.Render(text))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p Player) renderLog() string {
	lines := make([]string, 0, len(p.snap.Log))
	for _, l := range p.snap.Log {
		lines = append(lines, p.st.logLine.Render("> "+l))
	}
	return p.st.logBox.Render(strings.Join(lines, "\n"))
}

func (p Player) renderControls() string {
	parts := make([]string, 0, 6)
	for _, b := range p.keys.controls() {
		desc := b.Help().Desc
		if b.Help().Key == p.keys.Pause.Help().Key {
			desc = p.pauseLabel()
		}
		parts = append(parts, fmt.Sprintf("%s %s", p.st.selected.Render(b.Help().Key), p.st.keyHint.Render(desc)))
	}
	return strings.Join(parts, "  ")
}

func (p Player) renderHelp() string {
	var s strings.Builder
	s.WriteString("KEYBOARD SHORTCUTS\n\n")
	for _, b := range p.keys.all() {
		if b.Help().Key == p.keys.Menu.Help().Key && !p.embedded {
			continue
		}
		s.WriteString(fmt.Sprintf("  %-8s %s\n", b.Help().Key, b.Help().Desc))
	}
	return p.st.panel.Render(s.String())
}

func (p Player) View() string {
	var s strings.Builder
	s.WriteString(p.st.title.Render(strings.ToUpper(p.title)) + "\n")
	s.WriteString(p.statusLabel() + "\n\n")
	s.WriteString(p.renderGrid() + "\n\n")

	step := fmt.Sprintf("%d / %d", p.snap.Cursor, p.snap.Total)
	s.WriteString(p.st.label.Render("Step") + p.st.value.Render(step) + "\n")
	s.WriteString(p.st.label.Render("Progress") + p.st.value.Render(ProgressBar(p.snap.Progress(), 20)) + "\n")
	active := "none"
	if c, ok := p.snap.Active(); ok {
		active = c.String()
	}
	s.WriteString(p.st.label.Render("Active") + p.st.value.Render(active) + "\n")
	s.WriteString(p.st.label.Render("Theme") + p.st.value.Render(p.theme.Name) + "\n\n")

	s.WriteString(p.renderLog() + "\n\n")
	s.WriteString(p.renderControls() + "\n")

	view := p.st.panel.Render(s.String())
	if p.showHelp {
		return lipgloss.JoinHorizontal(lipgloss.Top, view, p.renderHelp())
	}
	return view
}

// Play runs a full-screen player for ctrl until the user quits.
func Play(ctrl *playback.Controller, theme Theme, title string) error {
	p := NewPlayer(ctrl, theme, title)
	defer p.Close()
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
