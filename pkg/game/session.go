package game

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/dream-market/pkg/actor"
	"github.com/jwebster45206/dream-market/pkg/combat"
	"github.com/jwebster45206/dream-market/pkg/dice"
	"github.com/jwebster45206/dream-market/pkg/scenario"
	"github.com/jwebster45206/dream-market/pkg/state"
)

// Session drives one playthrough: it walks the player through the stage
// graph, runs encounters through the combat engine, and records everything
// durable on the GameState. The shell talks only to this type.
type Session struct {
	gs     *state.GameState
	scn    *scenario.Scenario
	roller dice.Roller
	logger *slog.Logger

	enc *combat.Encounter
}

// NewSession starts a new playthrough at the scenario's start stage.
func NewSession(scn *scenario.Scenario, p *actor.Player, roller dice.Roller, logger *slog.Logger) (*Session, error) {
	s := &Session{
		gs:     state.NewGameState(scn, p),
		scn:    scn,
		roller: roller,
		logger: logger,
	}
	if err := s.enterStage(scn.Start); err != nil {
		return nil, err
	}
	return s, nil
}

// ResumeSession rebuilds a session from a loaded gamestate. If the saved
// stage is an encounter stage, the encounter restarts fresh: enemies live
// only for the duration of one combat and are never serialized.
func ResumeSession(gs *state.GameState, scn *scenario.Scenario, roller dice.Roller, logger *slog.Logger) (*Session, error) {
	if gs.Player == nil {
		return nil, fmt.Errorf("gamestate %s has no player", gs.ID)
	}
	// A save from a different graph could share a stage id and resume with
	// the wrong semantics; refuse it outright.
	if gs.Scenario != scn.Name {
		return nil, fmt.Errorf("gamestate %s was saved under %q, not %q: %w", gs.ID, gs.Scenario, scn.Name, ErrScenarioMismatch)
	}
	if _, ok := scn.Stage(gs.CurrentStage); !ok {
		return nil, fmt.Errorf("gamestate %s references unknown stage %q", gs.ID, gs.CurrentStage)
	}
	s := &Session{
		gs:     gs,
		scn:    scn,
		roller: roller,
		logger: logger,
	}
	if err := s.enterStage(gs.CurrentStage); err != nil {
		return nil, err
	}
	return s, nil
}

// GameState exposes the persistent session record for saving.
func (s *Session) GameState() *state.GameState { return s.gs }

// Player returns the session's player character.
func (s *Session) Player() *actor.Player { return s.gs.Player }

// Scenario returns the loaded stage graph.
func (s *Session) Scenario() *scenario.Scenario { return s.scn }

// InCombat reports whether an encounter is in progress.
func (s *Session) InCombat() bool { return s.enc != nil }

// Combat returns the live encounter, or nil outside combat.
func (s *Session) Combat() *combat.Encounter { return s.enc }

// Ended reports the ending once the session has reached one.
func (s *Session) Ended() (scenario.EndingID, bool) { return s.gs.Ended() }

// CanSave reports whether the session may be persisted right now. Saves
// are only permitted between fights.
func (s *Session) CanSave() bool {
	_, ended := s.gs.Ended()
	return !ended && s.enc == nil
}

// ChoiceView is one choice as presented to the player, with its
// availability already evaluated.
type ChoiceView struct {
	Key       string
	Prompt    string
	Available bool
}

// View is a read-only snapshot of what the shell should display.
type View struct {
	StageID     string
	Description string
	Choices     []ChoiceView
	InCombat    bool
	CombatIntro string
	Enemy       *actor.Enemy
	Ending      scenario.EndingID
}

// View returns the current display snapshot.
func (s *Session) View() View {
	st, _ := s.scn.Stage(s.gs.CurrentStage)
	v := View{
		StageID:     s.gs.CurrentStage,
		Description: st.Description,
	}
	if ending, ended := s.gs.Ended(); ended {
		v.Ending = ending
		return v
	}
	if s.enc != nil {
		v.InCombat = true
		v.Enemy = s.enc.Enemy()
		if st.Encounter != nil {
			v.CombatIntro = st.Encounter.Intro
		}
		return v
	}
	for _, c := range st.Choices {
		v.Choices = append(v.Choices, ChoiceView{
			Key:       c.Key,
			Prompt:    c.Prompt,
			Available: c.Available(s.gs.Player),
		})
	}
	return v
}

// Choose takes the stage choice with the given key. The choice's gates are
// checked against the player; a failed gate or unknown key leaves all state
// untouched.
func (s *Session) Choose(key string) error {
	if _, ended := s.gs.Ended(); ended {
		return ErrSessionEnded
	}
	if s.enc != nil {
		return ErrInCombat
	}

	st, _ := s.scn.Stage(s.gs.CurrentStage)
	c, ok := st.ChoiceByKey(key)
	if !ok {
		return fmt.Errorf("%q: %w", key, ErrUnknownChoice)
	}
	if !c.Available(s.gs.Player) {
		return fmt.Errorf("%q: %w", key, ErrChoiceUnavailable)
	}

	if c.SetsFlag != "" {
		s.gs.Player.SetFlag(c.SetsFlag)
	}
	if c.GivesItem != "" {
		s.gs.Player.Inventory.Add(c.GivesItem, 1)
	}
	s.gs.TurnCount++
	s.logger.Debug("Choice taken", "stage", s.gs.CurrentStage, "choice", key, "next", c.Next)
	return s.enterStage(c.Next)
}

// CombatAct forwards one combat action to the live encounter and, when the
// encounter resolves, routes the session to the stage or ending the
// outcome demands. Recoverable combat errors pass through unchanged.
func (s *Session) CombatAct(a combat.Action) ([]combat.Event, error) {
	if _, ended := s.gs.Ended(); ended {
		return nil, ErrSessionEnded
	}
	if s.enc == nil {
		return nil, ErrNotInCombat
	}

	events, err := s.enc.Act(a)
	if err != nil {
		return nil, err
	}
	s.gs.TurnCount++

	outcome, resolved := s.enc.Outcome()
	if !resolved {
		return events, nil
	}

	st, _ := s.scn.Stage(s.gs.CurrentStage)
	enc := st.Encounter
	s.enc = nil

	switch outcome {
	case combat.OutcomeVictory:
		if enc.SetsFlag != "" {
			s.gs.Player.SetFlag(enc.SetsFlag)
		}
		s.logger.Debug("Encounter won", "stage", s.gs.CurrentStage, "next", enc.OnVictory)
		return events, s.enterStage(enc.OnVictory)
	case combat.OutcomeFled:
		s.logger.Debug("Encounter fled", "stage", s.gs.CurrentStage, "next", enc.OnFled)
		return events, s.enterStage(enc.OnFled)
	default:
		// Defeat ends the run wherever it happens.
		s.gs.Ending = scenario.EndingDeath
		s.logger.Debug("Player defeated", "stage", s.gs.CurrentStage)
		return events, nil
	}
}

// enterStage moves the session to a stage and applies the stage's nature:
// terminal stages resolve the ending immediately, encounter stages spawn a
// fresh enemy and open combat.
func (s *Session) enterStage(id string) error {
	st, ok := s.scn.Stage(id)
	if !ok {
		return fmt.Errorf("unknown stage %q", id)
	}
	s.gs.CurrentStage = id

	if st.IsTerminal() {
		s.gs.Ending = st.ResolveEnding(s.gs.Player)
		s.logger.Debug("Session ended", "stage", id, "ending", s.gs.Ending)
		return nil
	}

	if st.Encounter != nil {
		tpl, ok := s.scn.EnemyTemplate(st.Encounter.Enemy)
		if !ok {
			return fmt.Errorf("stage %q references unknown enemy %q", id, st.Encounter.Enemy)
		}
		s.enc = combat.NewEncounter(s.gs.Player, actor.NewEnemy(tpl), s.roller)
		s.logger.Debug("Encounter started", "stage", id, "enemy", tpl.Name)
	}
	return nil
}
