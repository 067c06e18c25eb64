package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/dream-market/data"
	"github.com/jwebster45206/dream-market/internal/config"
	"github.com/jwebster45206/dream-market/internal/logger"
	internalstorage "github.com/jwebster45206/dream-market/internal/storage"
	"github.com/jwebster45206/dream-market/pkg/actor"
	"github.com/jwebster45206/dream-market/pkg/dice"
	"github.com/jwebster45206/dream-market/pkg/game"
	"github.com/jwebster45206/dream-market/pkg/scenario"
	"github.com/jwebster45206/dream-market/pkg/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)
	ctx := context.Background()

	scn, err := loadScenario(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
		os.Exit(1)
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	roller := dice.NewRoller(seed(cfg))

	session, err := startSession(ctx, scn, store, roller, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewGameUI(session, store, roller, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadScenario(cfg *config.Config) (*scenario.Scenario, error) {
	if cfg.Scenario == "" {
		return scenario.LoadScenarioFS(data.FS, data.DefaultScenario)
	}
	// A configured scenario may be a file on disk or one of the embedded
	// set; disk wins so authors can iterate without rebuilding.
	if _, err := os.Stat(cfg.Scenario); err == nil {
		return scenario.LoadScenario(cfg.Scenario)
	}
	return scenario.LoadScenarioFS(data.FS, "scenarios/"+cfg.Scenario)
}

func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		rs, err := internalstorage.NewRedisStorage(cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		if err := rs.Ping(ctx); err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return internalstorage.NewFileStorage(cfg.SaveDir, log)
	}
}

func seed(cfg *config.Config) int64 {
	if cfg.Seed != "" {
		if n, err := strconv.ParseInt(cfg.Seed, 10, 64); err == nil {
			return n
		}
	}
	return time.Now().UnixNano()
}

// startSession runs the pre-TUI menu on plain stdin: start a new run with
// a name and archetype, or resume a saved one.
func startSession(ctx context.Context, scn *scenario.Scenario, store storage.Storage, roller dice.Roller, log *slog.Logger) (*game.Session, error) {
	in := bufio.NewReader(os.Stdin)

	fmt.Printf("DREAM MARKET — %s\n\n", scn.Name)
	fmt.Println("  1 - New game")
	fmt.Println("  2 - Load game")
	choice := prompt(in, "\nSelect: ")

	if choice == "2" {
		return resumeSaved(ctx, in, scn, store, roller, log)
	}
	return newGame(in, scn, roller, log)
}

func newGame(in *bufio.Reader, scn *scenario.Scenario, roller dice.Roller, log *slog.Logger) (*game.Session, error) {
	name := prompt(in, "\nDreamer's name: ")
	if name == "" {
		name = "Dreamer"
	}

	archetypes := actor.Archetypes()
	fmt.Println("\nChoose an archetype:")
	for i, a := range archetypes {
		fmt.Printf("  %d - %s: %s\n", i+1, a.Name, a.Description)
	}

	var tpl actor.Archetype
	for {
		sel := prompt(in, "\nSelect: ")
		n, err := strconv.Atoi(sel)
		if err != nil || n < 1 || n > len(archetypes) {
			fmt.Println("Invalid selection.")
			continue
		}
		tpl = archetypes[n-1]
		break
	}

	p, err := actor.NewPlayer(name, tpl.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return game.NewSession(scn, p, roller, log)
}

func resumeSaved(ctx context.Context, in *bufio.Reader, scn *scenario.Scenario, store storage.Storage, roller dice.Roller, log *slog.Logger) (*game.Session, error) {
	ids, err := store.ListGameStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no saved games found")
	}

	fmt.Println("\nSaved games:")
	for i, id := range ids {
		fmt.Printf("  %d - %s\n", i+1, id)
	}

	for {
		sel := prompt(in, "\nSelect: ")
		n, err := strconv.Atoi(sel)
		if err != nil || n < 1 || n > len(ids) {
			fmt.Println("Invalid selection.")
			continue
		}
		gs, err := store.LoadGameState(ctx, ids[n-1])
		if err != nil {
			return nil, fmt.Errorf("failed to load save %s: %w", ids[n-1], err)
		}
		return game.ResumeSession(gs, scn, roller, log)
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
