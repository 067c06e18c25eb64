package game

import (
	"fmt"
	"strings"
)

// CommandKind classifies parsed shell input.
type CommandKind string

const (
	CmdAttack    CommandKind = "attack"
	CmdDefend    CommandKind = "defend"
	CmdUse       CommandKind = "use"
	CmdSpecial   CommandKind = "special"
	CmdRun       CommandKind = "run"
	CmdInventory CommandKind = "inventory"
	CmdStats     CommandKind = "stats"
	CmdSave      CommandKind = "save"
	CmdLoad      CommandKind = "load"
	CmdQuit      CommandKind = "quit"
	CmdHelp      CommandKind = "help"
	// CmdChoice carries a stage choice key (or menu number) in Arg. Any
	// single token that is not a reserved word parses as a choice; the
	// session decides whether it names a real choice.
	CmdChoice CommandKind = "choice"
)

// Command is one parsed line of player input. Arg carries the item name
// for use, the save id for load, and the choice key for choice.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand turns a raw input line into a Command. Parsing never
// consults game state; an attack command parses fine outside combat and is
// rejected by the session instead.
func ParseCommand(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{}, ErrEmptyInput
	}

	fields := strings.Fields(trimmed)
	verb := strings.ToLower(fields[0])
	rest := strings.TrimSpace(trimmed[len(fields[0]):])

	switch verb {
	case "attack", "a":
		return Command{Kind: CmdAttack}, nil
	case "defend", "d":
		return Command{Kind: CmdDefend}, nil
	case "use", "u":
		if rest == "" {
			return Command{}, fmt.Errorf("use requires an item name: %w", ErrUnknownCommand)
		}
		return Command{Kind: CmdUse, Arg: rest}, nil
	case "special", "s":
		return Command{Kind: CmdSpecial}, nil
	case "run", "flee":
		return Command{Kind: CmdRun}, nil
	case "inventory", "inv", "i":
		return Command{Kind: CmdInventory}, nil
	case "stats", "status":
		return Command{Kind: CmdStats}, nil
	case "save":
		return Command{Kind: CmdSave}, nil
	case "load":
		if rest == "" {
			return Command{}, fmt.Errorf("load requires a save id: %w", ErrUnknownCommand)
		}
		return Command{Kind: CmdLoad, Arg: rest}, nil
	case "quit", "exit":
		return Command{Kind: CmdQuit}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	}

	// A single bare token is a stage choice key or menu number.
	if len(fields) == 1 {
		return Command{Kind: CmdChoice, Arg: verb}, nil
	}
	return Command{}, fmt.Errorf("%q: %w", trimmed, ErrUnknownCommand)
}
