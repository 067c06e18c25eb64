package game

import "errors"

var (
	// ErrSessionEnded is returned when input arrives after an ending.
	ErrSessionEnded = errors.New("session has ended")
	// ErrInCombat is returned for narrative input during an encounter.
	ErrInCombat = errors.New("action unavailable during combat")
	// ErrNotInCombat is returned for combat input outside an encounter.
	ErrNotInCombat = errors.New("no combat in progress")
	// ErrUnknownChoice is returned when no choice on the current stage has
	// the given key.
	ErrUnknownChoice = errors.New("no such choice")
	// ErrChoiceUnavailable is returned when a choice exists but its item or
	// flag gate is not met.
	ErrChoiceUnavailable = errors.New("choice requirements not met")
	// ErrScenarioMismatch is returned when a loaded gamestate was saved
	// under a different scenario than the one running.
	ErrScenarioMismatch = errors.New("save belongs to a different scenario")
	// ErrEmptyInput is returned for blank command lines.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownCommand is returned for input that parses as no command.
	ErrUnknownCommand = errors.New("unknown command")
)
