package scenario

import "github.com/jwebster45206/dream-market/pkg/actor"

// Scenario is one loaded stage graph: a named start stage, a table of enemy
// templates, and the stages themselves. A scenario is immutable after load;
// all mutable session data lives in the game state.
type Scenario struct {
	Name    string                         `yaml:"name" json:"name"`
	Start   string                         `yaml:"start" json:"start"`
	Enemies map[string]actor.EnemyTemplate `yaml:"enemies" json:"enemies"`
	Stages  map[string]*Stage              `yaml:"stages" json:"stages"`
}

// Stage is one node of the graph. Exactly one shape is valid: a choice
// stage (Choices set), an encounter stage (Encounter set), or a terminal
// stage (Ending or EndingRules set). Validate enforces this.
type Stage struct {
	Description string       `yaml:"description" json:"description"`
	Choices     []Choice     `yaml:"choices,omitempty" json:"choices,omitempty"`
	Encounter   *Encounter   `yaml:"encounter,omitempty" json:"encounter,omitempty"`
	Ending      EndingID     `yaml:"ending,omitempty" json:"ending,omitempty"`
	EndingRules []EndingRule `yaml:"ending_rules,omitempty" json:"ending_rules,omitempty"`
}

// Choice is one selectable transition out of a choice stage. RequiresItem
// and RequiresFlag gate availability; SetsFlag and GivesItem apply when the
// choice is taken.
type Choice struct {
	Key          string `yaml:"key" json:"key"`
	Prompt       string `yaml:"prompt" json:"prompt"`
	Next         string `yaml:"next" json:"next"`
	SetsFlag     string `yaml:"sets_flag,omitempty" json:"sets_flag,omitempty"`
	GivesItem    string `yaml:"gives_item,omitempty" json:"gives_item,omitempty"`
	RequiresItem string `yaml:"requires_item,omitempty" json:"requires_item,omitempty"`
	RequiresFlag string `yaml:"requires_flag,omitempty" json:"requires_flag,omitempty"`
}

// Encounter binds a stage to an enemy template and names the stages that
// follow each non-fatal outcome. Defeat is handled by the engine, not the
// graph: it always ends the session with the death ending.
type Encounter struct {
	Enemy     string `yaml:"enemy" json:"enemy"`
	Intro     string `yaml:"intro,omitempty" json:"intro,omitempty"`
	OnVictory string `yaml:"on_victory" json:"on_victory"`
	OnFled    string `yaml:"on_fled" json:"on_fled"`
	SetsFlag  string `yaml:"sets_flag,omitempty" json:"sets_flag,omitempty"`
}

// Stage looks up a stage by id.
func (s *Scenario) Stage(id string) (*Stage, bool) {
	st, ok := s.Stages[id]
	return st, ok
}

// EnemyTemplate looks up an enemy template by key.
func (s *Scenario) EnemyTemplate(key string) (actor.EnemyTemplate, bool) {
	tpl, ok := s.Enemies[key]
	return tpl, ok
}

// IsTerminal reports whether the stage ends the session.
func (st *Stage) IsTerminal() bool {
	return st.Ending != "" || len(st.EndingRules) > 0
}

// Available reports whether the player currently meets the choice's gates.
func (c Choice) Available(v PlayerView) bool {
	if c.RequiresItem != "" && !v.HasItem(c.RequiresItem) {
		return false
	}
	if c.RequiresFlag != "" && !v.HasFlag(c.RequiresFlag) {
		return false
	}
	return true
}

// ChoiceByKey finds a choice on the stage by its key.
func (st *Stage) ChoiceByKey(key string) (Choice, bool) {
	for _, c := range st.Choices {
		if c.Key == key {
			return c, true
		}
	}
	return Choice{}, false
}
