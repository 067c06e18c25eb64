package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/dream-market/pkg/actor"
	"github.com/jwebster45206/dream-market/pkg/scenario"
)

// GameState is one saved session: the player, where they are in the stage
// graph, and whether the run has ended. It round-trips through JSON with no
// loss; live combat is deliberately excluded (saves happen between fights,
// and a resumed encounter stage restarts its encounter fresh).
type GameState struct {
	ID           uuid.UUID         `json:"id"`
	Scenario     string            `json:"scenario"`
	Player       *actor.Player     `json:"player"`
	CurrentStage string            `json:"current_stage"`
	Ending       scenario.EndingID `json:"ending,omitempty"`
	TurnCount    int               `json:"turn_count"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewGameState starts a fresh session for the player at the scenario's
// start stage.
func NewGameState(scn *scenario.Scenario, p *actor.Player) *GameState {
	now := time.Now().UTC()
	return &GameState{
		ID:           uuid.New(),
		Scenario:     scn.Name,
		Player:       p,
		CurrentStage: scn.Start,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Ended reports whether the session has reached an ending.
func (gs *GameState) Ended() (scenario.EndingID, bool) {
	if gs.Ending == "" {
		return "", false
	}
	return gs.Ending, true
}

// Touch bumps the update timestamp; callers do this before persisting.
func (gs *GameState) Touch() {
	gs.UpdatedAt = time.Now().UTC()
}
