package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/spiralsim/internal/config"
	"github.com/san-kum/spiralsim/internal/playback"
	"go.uber.org/zap"
)

var (
	menuTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	menuItem  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	menuPick  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
)

const (
	stateMenu = iota
	statePlay
)

type menuKeys struct {
	Up, Down, Select, Quit key.Binding
}

// Menu lets the user pick a preset and then hands the screen to a Player.
type Menu struct {
	state   int
	cursor  int
	presets []string
	keys    menuKeys
	logger  *zap.SugaredLogger
	clock   playback.Clock
	player  Player
}

// NewMenu builds the preset picker. A nil logger discards output.
func NewMenu(logger *zap.SugaredLogger) Menu {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return Menu{
		state:   stateMenu,
		presets: config.ListPresets(),
		logger:  logger,
		clock:   playback.RealClock(),
		keys: menuKeys{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
			Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == statePlay {
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.player.keys.Menu) {
			m.player.Close()
			m.logger.Infow("menu: closed session", "steps", m.player.Snapshot().Cursor)
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.player.Update(msg)
		m.player = next.(Player)
		return m, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Select):
		return m.open(m.presets[m.cursor])
	}
	return m, nil
}

func (m Menu) open(name string) (Menu, tea.Cmd) {
	cfg := config.GetPreset(name)
	ctrl := playback.New(cfg.Rows, cfg.Cols,
		playback.WithDelay(cfg.Delay()),
		playback.WithClock(m.clock),
		playback.WithLogger(m.logger),
	)
	m.logger.Infow("menu: opened preset", "preset", name, "rows", cfg.Rows, "cols", cfg.Cols, "delay", cfg.Delay())
	m.player = NewPlayer(ctrl, GetTheme(cfg.Theme), fmt.Sprintf("spiral %s %dx%d", name, cfg.Rows, cfg.Cols))
	m.player.embedded = true
	m.state = statePlay
	return m, m.player.Init()
}

func (m Menu) View() string {
	if m.state == statePlay {
		return m.player.View() + "\n" + menuDim.Render("  esc: back to presets")
	}

	var s strings.Builder
	s.WriteString(menuTitle.Render("SPIRAL TRAVERSAL") + "\n\n")
	for i, name := range m.presets {
		cfg := config.Presets[name]
		line := fmt.Sprintf("%-10s %3dx%-3d %s", name, cfg.Rows, cfg.Cols, config.PresetInfo(name))
		if i == m.cursor {
			s.WriteString(menuPick.Render("> "+line) + "\n")
		} else {
			s.WriteString(menuItem.Render("  "+line) + "\n")
		}
	}
	s.WriteString("\n" + menuDim.Render("↑/↓ select  enter play  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}

// RunInteractive starts the preset picker.
func RunInteractive(logger *zap.SugaredLogger) error {
	m := NewMenu(logger)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(Menu); ok && fm.state == statePlay {
		fm.player.Close()
	}
	return err
}
