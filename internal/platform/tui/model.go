package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/core"
	"github.com/vovakirdan/cupid-arrow/internal/game"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/scheduler"
	"github.com/vovakirdan/cupid-arrow/internal/session"
)

// holdDuration is how long a direction counts as held after its last key
// event. Terminals report presses and auto-repeats but never releases.
const holdDuration = 150 * time.Millisecond

// storeTimeout bounds ranking store calls made from the UI.
const storeTimeout = 5 * time.Second

// Options configures a game model.
type Options struct {
	Game     config.CupidConfig
	TickRate int   // 0 uses Game.Timing.DefaultTickRate
	Seed     int64 // 0 uses the current time
	Manager  *ranking.Manager
	Logger   *log.Logger
	Width    int
	Height   int
}

// rankingsMsg carries a refreshed leaderboard.
type rankingsMsg struct {
	entries []ranking.Entry
}

// submitMsg carries the outcome of a name submission.
type submitMsg struct {
	res ranking.SubmitResult
	err error
}

// Model is the Bubble Tea model for one Cupid Arrow session. The simulation
// runs on a Manual scheduler stepped once per frame tick.
type Model struct {
	ctrl   *session.Controller
	sched  *scheduler.Manual
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	name   textinput.Model
	table  table.Model

	tickRate   int
	width      int
	height     int
	frame      uint64
	holdFrames uint64
	leftUntil  uint64
	rightUntil uint64

	last       game.Screen // screen seen on the previous update
	highlight  int         // rank to select in the table, or 0
	submitting bool
	inputErr   string
	quitting   bool
}

// NewModel creates a model on the start screen.
func NewModel(opts Options) Model {
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = opts.Game.Timing.DefaultTickRate
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		def := core.DefaultConfig()
		width, height = def.ScreenW, def.ScreenH
	}

	sched := scheduler.NewManual()
	ctrl := session.NewController(opts.Game, opts.Manager, sched, game.NewRandom(seed), opts.Logger)

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = ranking.MaxNameLength
	ti.Width = ranking.MaxNameLength + 2
	ti.Prompt = "> "

	h := help.New()
	h.Width = width

	hold := uint64(holdDuration * time.Duration(tickRate) / time.Second)
	return Model{
		ctrl:       ctrl,
		sched:      sched,
		screen:     core.NewScreen(width, height),
		keys:       DefaultKeyMap(),
		help:       h,
		name:       ti,
		table:      newRankingsTable(height),
		tickRate:   tickRate,
		width:      width,
		height:     height,
		holdFrames: max(hold, 1),
		last:       game.ScreenStart,
	}
}

// Controller exposes the session behind the model.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Init starts the frame tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.table.SetHeight(rankingsTableHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case rankingsMsg:
		m.setRows(msg.entries)
		return m, nil

	case submitMsg:
		m.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, ranking.ErrEmptyName) {
				m.inputErr = "Enter a name to save your score"
			} else {
				m.inputErr = msg.err.Error()
			}
			return m, nil
		}
		m.highlight = msg.res.Rank
		cmd := m.syncScreen()
		return m, cmd
	}

	return m, nil
}

// handleTick steps the simulation with the currently held directions.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.frame++
	if m.ctrl.Screen() == game.ScreenPlaying {
		m.ctrl.Move(game.Input{
			Left:  m.frame <= m.leftUntil,
			Right: m.frame <= m.rightUntil,
		})
		m.sched.Step()
	}
	cmd := m.syncScreen()
	return m, tea.Batch(tickCmd(m.tickRate), cmd)
}

// handleKey processes keyboard input for the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	screen := m.ctrl.Screen()
	if screen == game.ScreenNameInput {
		return m.handleNameKey(msg)
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		return m.quit()
	}

	var cmd tea.Cmd
	switch screen {
	case game.ScreenStart:
		switch action {
		case core.ActionConfirm:
			m.startGame()
		case core.ActionRankings:
			m.ctrl.ShowRankings()
		}

	case game.ScreenPlaying:
		switch action {
		case core.ActionLeft:
			m.leftUntil = m.frame + m.holdFrames
			m.rightUntil = 0
		case core.ActionRight:
			m.rightUntil = m.frame + m.holdFrames
			m.leftUntil = 0
		case core.ActionShield:
			m.ctrl.UseItem(game.ItemShield)
		case core.ActionSpeed:
			m.ctrl.UseItem(game.ItemSpeed)
		}

	case game.ScreenRankings:
		switch action {
		case core.ActionConfirm:
			m.startGame()
		case core.ActionBack:
			m.ctrl.BackToStart()
		default:
			m.table, cmd = m.table.Update(msg)
		}
	}

	sync := m.syncScreen()
	return m, tea.Batch(cmd, sync)
}

// handleNameKey routes keys to the name input. Only enter, esc and ctrl+c are
// special; everything else is typed.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.submitting {
			return m, nil
		}
		name := m.name.Value()
		if ranking.CleanName(name) == "" {
			m.inputErr = "Enter a name to save your score"
			return m, nil
		}
		m.submitting = true
		m.inputErr = ""
		return m, m.submitCmd(name)

	case tea.KeyEsc:
		if m.submitting {
			return m, nil
		}
		m.ctrl.SkipName()
		cmd := m.syncScreen()
		return m, cmd
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	m.inputErr = ""
	return m, cmd
}

func (m *Model) startGame() {
	if m.ctrl.Start() {
		m.highlight = 0
		m.leftUntil, m.rightUntil = 0, 0
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Close()
	return m, tea.Quit
}

// syncScreen reacts to screen changes made by the engine or by key handlers.
func (m *Model) syncScreen() tea.Cmd {
	cur := m.ctrl.Screen()
	if cur == m.last {
		return nil
	}
	m.last = cur

	switch cur {
	case game.ScreenNameInput:
		m.name.Reset()
		m.inputErr = ""
		return m.name.Focus()
	case game.ScreenRankings:
		m.name.Blur()
		m.setRows(m.ctrl.Rankings())
		return m.refreshCmd()
	}
	return nil
}

func (m Model) submitCmd(name string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		res, err := ctrl.SubmitName(ctx, name)
		return submitMsg{res: res, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return rankingsMsg{entries: ctrl.RefreshRankings(ctx)}
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.ctrl.Screen() {
	case game.ScreenPlaying:
		DrawSnapshot(m.screen, m.ctrl.Snapshot())
		return RenderScreen(m.screen)
	case game.ScreenNameInput:
		return m.viewNameInput()
	case game.ScreenRankings:
		return m.viewRankings()
	default:
		return m.viewStart()
	}
}

// Run starts the Bubble Tea program for local play.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.ctrl.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
