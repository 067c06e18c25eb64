package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/dream-market/internal/logger"
	"github.com/jwebster45206/dream-market/pkg/combat"
	"github.com/jwebster45206/dream-market/pkg/dice"
	"github.com/jwebster45206/dream-market/pkg/game"
	"github.com/jwebster45206/dream-market/pkg/item"
	"github.com/jwebster45206/dream-market/pkg/scenario"
	"github.com/jwebster45206/dream-market/pkg/storage"
)

const placeholderText = "What do you do?"

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")) // salmon

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

// GameUI is the BubbleTea model that runs the game shell.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	session *game.Session
	store   storage.Storage
	roller  dice.Roller
	logger  *slog.Logger

	storyViewport viewport.Model
	metaViewport  viewport.Model
	textarea      textarea.Model
	transcript    []string
	ready         bool
	width         int
	height        int

	showQuitModal bool
}

func NewGameUI(session *game.Session, store storage.Storage, roller dice.Roller, log *slog.Logger) GameUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true
	metaVp := viewport.New(20, 20)

	ui := GameUI{
		session:       session,
		store:         store,
		roller:        roller,
		logger:        log,
		textarea:      ta,
		storyViewport: storyVp,
		metaViewport:  metaVp,
	}
	ui.appendBlock(titleStyle.Render("DREAM MARKET"))
	ui.appendBlock("You are about to fall asleep. Type choices or commands below; try 'help'.")
	ui.appendStageView()
	return ui
}

func (m GameUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		storyWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - storyWidth - 6
		m.storyViewport.Width = storyWidth - 2
		m.storyViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(storyWidth - 4)

		m.ready = true
		m.refreshStory()
		m.refreshMeta()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			m.appendBlock(userStyle.Render("> " + input))
			m.dispatch(input)
			m.refreshStory()
			m.refreshMeta()
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// dispatch parses one input line and applies it to the session. Every
// error is recoverable: it becomes a transcript message and nothing else
// changes.
func (m *GameUI) dispatch(input string) {
	cmd, err := game.ParseCommand(input)
	if err != nil {
		m.appendBlock(errorStyle.Render("I don't understand that. Try 'help'."))
		return
	}

	switch cmd.Kind {
	case game.CmdHelp:
		m.appendBlock(helpText())
	case game.CmdQuit:
		m.showQuitModal = true
	case game.CmdInventory:
		m.appendBlock(m.renderInventory())
	case game.CmdStats:
		m.appendBlock(m.renderStats())
	case game.CmdSave:
		m.doSave()
	case game.CmdLoad:
		m.doLoad(cmd.Arg)
	case game.CmdAttack:
		m.doCombat(combat.Action{Kind: combat.ActionAttack})
	case game.CmdDefend:
		m.doCombat(combat.Action{Kind: combat.ActionDefend})
	case game.CmdUse:
		m.doCombat(combat.Action{Kind: combat.ActionUseItem, Item: cmd.Arg})
	case game.CmdSpecial:
		m.doCombat(combat.Action{Kind: combat.ActionSpecial})
	case game.CmdRun:
		m.doCombat(combat.Action{Kind: combat.ActionRun})
	case game.CmdChoice:
		m.doChoice(cmd.Arg)
	}
}

func (m *GameUI) doChoice(arg string) {
	if m.session.InCombat() {
		m.appendBlock(errorStyle.Render("You are in a fight. Try attack, defend, use, special, or run."))
		return
	}

	key := arg
	view := m.session.View()
	// A bare number selects the nth listed choice.
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(view.Choices) {
			m.appendBlock(errorStyle.Render("No such choice."))
			return
		}
		key = view.Choices[n-1].Key
	}

	if err := m.session.Choose(key); err != nil {
		m.appendBlock(errorStyle.Render(choiceErrorText(err)))
		return
	}
	m.appendStageView()
}

func choiceErrorText(err error) string {
	switch {
	case errors.Is(err, game.ErrChoiceUnavailable):
		return "You lack what that path demands."
	case errors.Is(err, game.ErrUnknownChoice):
		return "No such choice."
	case errors.Is(err, game.ErrSessionEnded):
		return "The dream is over."
	default:
		return err.Error()
	}
}

func (m *GameUI) doCombat(a combat.Action) {
	if !m.session.InCombat() {
		m.appendBlock(errorStyle.Render("There is nothing to fight here."))
		return
	}

	events, err := m.session.CombatAct(a)
	if err != nil {
		m.appendBlock(errorStyle.Render(combatErrorText(err)))
		return
	}
	var lines []string
	for _, ev := range events {
		lines = append(lines, combatStyle.Render(ev.Text))
	}
	m.appendBlock(strings.Join(lines, "\n"))

	// Combat may have resolved into a new stage or an ending.
	if !m.session.InCombat() {
		m.appendStageView()
	}
}

func combatErrorText(err error) string {
	switch {
	case errors.Is(err, combat.ErrSpecialUsed):
		return "Your special is spent for this fight."
	case errors.Is(err, combat.ErrInsufficientSanity):
		return "Your mind is too frayed for that."
	case errors.Is(err, combat.ErrItemUnusable):
		return "That has no use in a fight."
	case errors.Is(err, item.ErrNotFound):
		return "You don't have that."
	case errors.Is(err, combat.ErrCombatOver):
		return "The fight is already over."
	default:
		return err.Error()
	}
}

func (m *GameUI) doSave() {
	if !m.session.CanSave() {
		m.appendBlock(errorStyle.Render("You cannot save mid-fight."))
		return
	}
	gs := m.session.GameState()
	if err := m.store.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		logger.WithError(m.logger, err).Error("Save failed")
		m.appendBlock(errorStyle.Render("Save failed: " + err.Error()))
		return
	}
	note := fmt.Sprintf("Saved as %s", gs.ID)
	if err := clipboard.WriteAll(gs.ID.String()); err == nil {
		note += " (id copied to clipboard)"
	}
	m.appendBlock(promptStyle.Render(note))
}

func (m *GameUI) doLoad(arg string) {
	id, err := uuid.Parse(arg)
	if err != nil {
		m.appendBlock(errorStyle.Render("That is not a save id."))
		return
	}
	gs, err := m.store.LoadGameState(context.Background(), id)
	if err != nil {
		logger.WithError(m.logger, err).Error("Load failed", "uuid", id)
		m.appendBlock(errorStyle.Render("Load failed: " + err.Error()))
		return
	}
	session, err := game.ResumeSession(gs, m.session.Scenario(), m.roller, m.logger)
	if err != nil {
		if errors.Is(err, game.ErrScenarioMismatch) {
			m.appendBlock(errorStyle.Render("That save belongs to a different dream."))
			return
		}
		m.appendBlock(errorStyle.Render("Load failed: " + err.Error()))
		return
	}
	m.session = session
	m.appendBlock(promptStyle.Render(fmt.Sprintf("Loaded %s.", id)))
	m.appendStageView()
}

// appendStageView renders the current stage (or ending) into the
// transcript.
func (m *GameUI) appendStageView() {
	view := m.session.View()

	var b strings.Builder
	b.WriteString(narratorStyle.Render(view.Description))

	if ending, ok := m.session.Ended(); ok {
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("ENDING: " + endingTitle(ending)))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("Type 'quit' to leave the dream, or 'load <id>' to revisit a save."))
		m.appendBlock(b.String())
		return
	}

	if view.InCombat {
		if view.CombatIntro != "" {
			b.WriteString("\n\n")
			b.WriteString(combatStyle.Render(view.CombatIntro))
		}
		b.WriteString("\n\n")
		b.WriteString(combatStyle.Render(fmt.Sprintf("%s — %d/%d health",
			view.Enemy.Name, view.Enemy.Health, view.Enemy.MaxHealth)))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("Commands: attack, defend, use <item>, special, run"))
		m.appendBlock(b.String())
		return
	}

	b.WriteString("\n")
	for i, c := range view.Choices {
		line := fmt.Sprintf("  %d. %s", i+1, c.Prompt)
		if !c.Available {
			line += promptStyle.Render("  (locked)")
		}
		b.WriteString("\n" + line)
	}
	m.appendBlock(b.String())
}

// endingTitle turns an ending id like "merchant_resell" into a display
// title like "Merchant Resell".
func endingTitle(id scenario.EndingID) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(id), "_", " "))
}

func (m *GameUI) renderInventory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory") + "\n")
	inv := m.session.Player().Inventory
	if inv == nil || inv.Len() == 0 {
		b.WriteString("Nothing but lint and half a dream.")
		return b.String()
	}
	for name, qty := range inv.Items() {
		b.WriteString(fmt.Sprintf("• %s ×%d\n", name, qty))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *GameUI) renderStats() string {
	p := m.session.Player()
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name) + "\n")
	b.WriteString(fmt.Sprintf("Archetype: %s\n", p.Archetype))
	b.WriteString(fmt.Sprintf("Health: %d/%d   Sanity: %d/%d\n", p.Health, p.MaxHealth, p.Sanity, p.MaxSanity))
	b.WriteString(fmt.Sprintf("Strength %d · Agility %d · Magic %d", p.Stats.Strength, p.Stats.Agility, p.Stats.Magic))
	return b.String()
}

func helpText() string {
	return titleStyle.Render("Commands") + `
• <number> or <key> - take a stage choice
• attack, defend, use <item>, special, run - combat actions
• inventory, stats - inspect your dreamer
• save, load <id> - persist or resume a session
• quit - leave the dream`
}

func (m *GameUI) appendBlock(s string) {
	if s == "" {
		return
	}
	m.transcript = append(m.transcript, s)
}

func (m *GameUI) refreshStory() {
	width := m.storyViewport.Width - 6
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	for _, block := range m.transcript {
		b.WriteString(wordwrap.String(block, width))
		b.WriteString("\n\n")
	}
	m.storyViewport.SetContent(b.String())
	m.storyViewport.GotoBottom()
}

func (m *GameUI) refreshMeta() {
	p := m.session.Player()
	gs := m.session.GameState()

	var b strings.Builder
	b.WriteString(titleStyle.Render("DREAMER") + "\n\n")
	b.WriteString(p.Name + "\n")
	b.WriteString(p.Archetype + "\n\n")
	b.WriteString(fmt.Sprintf("Health: %d/%d\n", p.Health, p.MaxHealth))
	b.WriteString(fmt.Sprintf("Sanity: %d/%d\n\n", p.Sanity, p.MaxSanity))
	b.WriteString(fmt.Sprintf("Str %d  Agi %d  Mag %d\n\n", p.Stats.Strength, p.Stats.Agility, p.Stats.Magic))

	b.WriteString("Session:\n")
	b.WriteString(gs.ID.String()[:8] + "...\n")
	b.WriteString(fmt.Sprintf("%d turns\n\n", gs.TurnCount))

	b.WriteString("Commands:\n")
	b.WriteString("• Ctrl+C: Quit\n")
	b.WriteString("• Enter: Send\n")
	b.WriteString("• help: Help\n")

	m.metaViewport.SetContent(b.String())
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}
	return m, nil
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Wake Up?"))
	content.WriteString("\n\n")
	content.WriteString("Leave the Dream Market? Unsaved progress fades with the dream.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep dreaming"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	storyWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - storyWidth - 6

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}
