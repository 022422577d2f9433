package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/rogue-engine/pkg/game"
	"github.com/jwebster45206/rogue-engine/pkg/grid"
	"github.com/jwebster45206/rogue-engine/pkg/state"
)

// chargeItems maps the charge hotkeys to the item that powers them.
var chargeItems = map[string]string{
	"1": "spear",
	"2": "horse",
	"3": "bow",
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	floorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	terrainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("94")) // brown

	waterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	treeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")). // yellow
			Bold(true)

	enemyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	frozenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")) // cyan

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	portStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("226"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api       *APIClient
	gameState *state.GameState

	logViewport viewport.Model
	messages    []string
	ready       bool
	width       int
	height      int
	err         error

	// Charge targeting state: cursor is moved with the arrow keys and
	// enter requests the charge.
	targeting  bool
	targetItem string
	cursor     grid.Coord

	// Item selection state: a digit picks an inventory slot.
	itemMode bool

	showQuitModal bool
	gameOver      bool
}

type actionResultMsg struct {
	sr  *SessionResponse
	err error
}

func NewConsoleUI(api *APIClient, sr *SessionResponse) ConsoleUI {
	vp := viewport.New(60, 8)

	ui := ConsoleUI{
		api:         api,
		gameState:   sr.GameState,
		logViewport: vp,
	}
	ui.pushMessage("You wake on the surface. The exit is marked E.")
	return ui
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = m.width - 4
		m.logViewport.Height = maxInt(4, m.height-grid.Size-8)
		m.ready = true
		m.refreshLog()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case actionResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.pushMessage(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		m.err = nil
		m.gameState = msg.sr.GameState
		if msg.sr.Result != nil {
			for _, line := range msg.sr.Result.Messages {
				m.pushMessage(line)
			}
			if msg.sr.Result.GameOver {
				m.gameOver = true
			}
		}
		for _, ev := range msg.sr.Events {
			if line := describeEvent(ev); line != "" {
				m.pushMessage(line)
			}
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		m.showQuitModal = true
		return m, nil
	}

	if m.gameOver {
		return m, nil
	}

	if m.targeting {
		return m.handleTargetingKey(key)
	}
	if m.itemMode {
		return m.handleItemKey(key)
	}
	if m.gameState.Pending != nil {
		switch key {
		case "y", "enter":
			return m, m.send(game.Action{Kind: game.ActionConfirm})
		case "n", "esc":
			return m, m.send(game.Action{Kind: game.ActionCancel})
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		return m, m.send(game.Action{Kind: game.ActionMove, DY: -1})
	case "down", "j":
		return m, m.send(game.Action{Kind: game.ActionMove, DY: 1})
	case "left", "h":
		return m, m.send(game.Action{Kind: game.ActionMove, DX: -1})
	case "right", "l":
		return m, m.send(game.Action{Kind: game.ActionMove, DX: 1})
	case ".", " ":
		return m, m.send(game.Action{Kind: game.ActionWait})
	case "t":
		if target, ok := m.adjacentNPC(); ok {
			return m, m.send(game.Action{Kind: game.ActionTalk, Target: &target})
		}
		m.pushMessage("There is no one nearby to talk to.")
	case "u":
		if len(m.gameState.Player.Inventory) == 0 {
			m.pushMessage("Your pack is empty.")
			return m, nil
		}
		m.itemMode = true
	case "c":
		if err := clipboard.WriteAll(m.gameState.ID.String()); err != nil {
			m.pushMessage(errorStyle.Render("Clipboard unavailable: " + err.Error()))
		} else {
			m.pushMessage("Session ID copied to clipboard.")
		}
	case "1", "2", "3":
		item := chargeItems[key]
		if !m.carries(item) {
			m.pushMessage(fmt.Sprintf("You do not carry a %s.", item))
			return m, nil
		}
		m.targeting = true
		m.targetItem = item
		m.cursor = grid.Coord{X: m.gameState.Player.X, Y: m.gameState.Player.Y}
	}
	return m, nil
}

func (m ConsoleUI) handleTargetingKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.targeting = false
	case "up", "k":
		m.cursor.Y = maxInt(0, m.cursor.Y-1)
	case "down", "j":
		m.cursor.Y = minInt(grid.Size-1, m.cursor.Y+1)
	case "left", "h":
		m.cursor.X = maxInt(0, m.cursor.X-1)
	case "right", "l":
		m.cursor.X = minInt(grid.Size-1, m.cursor.X+1)
	case "enter":
		target := m.cursor
		item := m.targetItem
		m.targeting = false
		return m, m.send(game.Action{Kind: game.ActionCharge, ItemID: item, Target: &target})
	}
	return m, nil
}

func (m ConsoleUI) handleItemKey(key string) (tea.Model, tea.Cmd) {
	if key == "esc" {
		m.itemMode = false
		return m, nil
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		idx := int(key[0] - '0')
		inv := m.gameState.Player.Inventory
		if idx < len(inv) {
			m.itemMode = false
			return m, m.send(game.Action{Kind: game.ActionUseItem, ItemID: inv[idx].ID})
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "enter":
			return m, tea.Quit
		case "n", "esc":
			m.showQuitModal = false
		}
	}
	return m, nil
}

func (m ConsoleUI) send(action game.Action) tea.Cmd {
	api := m.api
	id := m.gameState.ID
	return func() tea.Msg {
		sr, err := api.SendAction(id, action)
		return actionResultMsg{sr: sr, err: err}
	}
}

func (m *ConsoleUI) carries(itemID string) bool {
	for _, it := range m.gameState.Player.Inventory {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// adjacentNPC scans the four orthogonal neighbors for an NPC tile.
func (m *ConsoleUI) adjacentNPC() (grid.Coord, bool) {
	z := m.gameState.CurrentZone()
	if z == nil {
		return grid.Coord{}, false
	}
	p := m.gameState.Player
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		x, y := p.X+d[0], p.Y+d[1]
		if t, ok := z.Grid.At(x, y); ok && t.Type == grid.TileNPC {
			return grid.Coord{X: x, Y: y}, true
		}
	}
	return grid.Coord{}, false
}

func (m *ConsoleUI) pushMessage(line string) {
	m.messages = append(m.messages, line)
	if len(m.messages) > 100 {
		m.messages = m.messages[len(m.messages)-100:]
	}
	m.refreshLog()
}

func (m *ConsoleUI) refreshLog() {
	width := m.logViewport.Width
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	for _, line := range m.messages {
		b.WriteString(wordwrap.String(line, width) + "\n")
	}
	m.logViewport.SetContent(b.String())
	m.logViewport.GotoBottom()
}

func describeEvent(ev game.Event) string {
	switch ev.Kind {
	case "enemy_defeated":
		return msgStyle.Render(fmt.Sprintf("The %s falls. +%d points.", ev.Enemy, ev.Points))
	case "bomb_exploded":
		return msgStyle.Render("The bomb goes off with a roar.")
	default:
		return ""
	}
}

func (m ConsoleUI) View() string {
	if !m.ready || m.gameState == nil {
		return "Loading..."
	}

	if m.showQuitModal {
		modal := modalStyle.Render(titleStyle.Render("Quit?") + "\n\nPress y to quit, n to keep playing.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	board := m.renderGrid()
	stats := m.renderStats()
	top := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", stats)

	var footer string
	switch {
	case m.gameOver:
		footer = errorStyle.Render("The run is over. Press q to quit.")
	case m.targeting:
		footer = helpStyle.Render(fmt.Sprintf("Targeting with %s. Arrows aim, enter strikes, esc backs out.", m.targetItem))
	case m.itemMode:
		footer = helpStyle.Render("Press an inventory slot number, esc to back out.")
	case m.gameState.Pending != nil:
		footer = titleStyle.Render("Confirm the attack? y/n")
	default:
		footer = helpStyle.Render("arrows move · . wait · 1/2/3 charge · u use · t talk · c copy id · q quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("ROGUE ENGINE"),
		"",
		top,
		"",
		m.logViewport.View(),
		footer,
	)
}

func (m ConsoleUI) renderGrid() string {
	z := m.gameState.CurrentZone()
	if z == nil {
		return "void"
	}

	enemyAt := make(map[string]rune)
	frozenAt := make(map[string]bool)
	for _, en := range z.Enemies {
		r := 'e'
		if len(en.Type) > 0 {
			r = rune(strings.ToUpper(en.Type)[0])
		}
		enemyAt[en.Pos().Key()] = r
		frozenAt[en.Pos().Key()] = en.ShowFrozenVisual
	}

	p := m.gameState.Player
	var rows []string
	for y := 0; y < grid.Size; y++ {
		var b strings.Builder
		for x := 0; x < grid.Size; x++ {
			key := grid.Coord{X: x, Y: y}.Key()

			var cell string
			switch {
			case m.targeting && m.cursor.X == x && m.cursor.Y == y:
				cell = cursorStyle.Render("+")
			case p.X == x && p.Y == y:
				cell = playerStyle.Render("@")
			case enemyAt[key] != 0:
				style := enemyStyle
				if frozenAt[key] {
					style = frozenStyle
				}
				cell = style.Render(string(enemyAt[key]))
			default:
				tile, _ := z.Grid.At(x, y)
				cell = renderTile(tile)
			}
			b.WriteString(cell + " ")
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// renderTile draws one cell. Pitfalls render as floor on purpose: the
// player discovers them by falling in.
func renderTile(t grid.Tile) string {
	switch t.Type {
	case grid.TileWall:
		return terrainStyle.Render("#")
	case grid.TileRock:
		return terrainStyle.Render("^")
	case grid.TileWater:
		return waterStyle.Render("~")
	case grid.TileTree:
		return treeStyle.Render("T")
	case grid.TileExit:
		return portStyle.Render("E")
	case grid.TilePort:
		return portStyle.Render("O")
	case grid.TileDoorClosed:
		return terrainStyle.Render("+")
	case grid.TileBomb:
		return errorStyle.Render("b")
	case grid.TileItem:
		return itemStyle.Render("*")
	case grid.TileNPC:
		return itemStyle.Render("&")
	default:
		return floorStyle.Render("·")
	}
}

func (m ConsoleUI) renderStats() string {
	p := m.gameState.Player
	var b strings.Builder

	b.WriteString(statStyle.Render(fmt.Sprintf("HP      %d/%d", p.HP, p.MaxHP)) + "\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Hunger  %d", p.Hunger)) + "\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Thirst  %d", p.Thirst)) + "\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Points  %d", p.Points)) + "\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Turn    %d", m.gameState.Turn)) + "\n")
	b.WriteString(statStyle.Render("Zone    "+m.gameState.Zone.String()) + "\n\n")

	b.WriteString(titleStyle.Render("PACK") + "\n")
	if len(p.Inventory) == 0 {
		b.WriteString(helpStyle.Render("empty") + "\n")
	}
	for i, it := range p.Inventory {
		line := fmt.Sprintf("%d %s", i, it.ID)
		if it.UsesLeft > 0 {
			line += fmt.Sprintf(" (%d)", it.UsesLeft)
		}
		b.WriteString(statStyle.Render(line) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("id "+m.gameState.ID.String()[:8]+"..."))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
