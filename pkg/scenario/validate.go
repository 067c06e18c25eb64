package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/dream-market/pkg/item"
)

// ValidationError aggregates every problem found in a stage graph so the
// author can fix them in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the structural soundness of the stage graph:
//
//   - the start stage exists
//   - every stage is exactly one of choice, encounter, or terminal
//   - every referenced stage and enemy template exists
//   - choice keys are unique within a stage
//   - item names in gates, gifts, and enemy drops exist in the catalog
//   - terminal stages carry a fixed ending or rules (not both), rules end
//     with an unconditional default, and name only known endings
//   - every stage can reach a terminal, and every stage is reachable from
//     the start
//
// All violations are collected into a single *ValidationError.
func (s *Scenario) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if s.Name == "" {
		addf("scenario name is empty")
	}
	if s.Start == "" {
		addf("start stage is empty")
	} else if _, ok := s.Stages[s.Start]; !ok {
		addf("start stage %q does not exist", s.Start)
	}
	if len(s.Stages) == 0 {
		addf("scenario has no stages")
	}

	// Deterministic error ordering.
	ids := make([]string, 0, len(s.Stages))
	for id := range s.Stages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		st := s.Stages[id]
		if st == nil {
			addf("stage %q is empty", id)
			continue
		}
		s.validateStage(id, st, addf)
	}

	enemyKeys := make([]string, 0, len(s.Enemies))
	for key := range s.Enemies {
		enemyKeys = append(enemyKeys, key)
	}
	sort.Strings(enemyKeys)
	for _, key := range enemyKeys {
		for _, drop := range s.Enemies[key].Drops {
			if _, ok := item.Lookup(drop); !ok {
				addf("enemy template %q drops unknown item %q", key, drop)
			}
		}
	}

	s.validateReachability(ids, addf)

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (s *Scenario) validateStage(id string, st *Stage, addf func(string, ...any)) {
	shapes := 0
	if len(st.Choices) > 0 {
		shapes++
	}
	if st.Encounter != nil {
		shapes++
	}
	if st.IsTerminal() {
		shapes++
	}
	if shapes != 1 {
		addf("stage %q must be exactly one of choice, encounter, or terminal", id)
	}

	keys := map[string]bool{}
	for i, c := range st.Choices {
		if c.Key == "" {
			addf("stage %q choice %d has no key", id, i)
		} else if keys[c.Key] {
			addf("stage %q has duplicate choice key %q", id, c.Key)
		}
		keys[c.Key] = true
		if c.Next == "" {
			addf("stage %q choice %q has no next stage", id, c.Key)
		} else if _, ok := s.Stages[c.Next]; !ok {
			addf("stage %q choice %q references unknown stage %q", id, c.Key, c.Next)
		}
		if c.RequiresItem != "" {
			if _, ok := item.Lookup(c.RequiresItem); !ok {
				addf("stage %q choice %q requires unknown item %q", id, c.Key, c.RequiresItem)
			}
		}
		if c.GivesItem != "" {
			if _, ok := item.Lookup(c.GivesItem); !ok {
				addf("stage %q choice %q gives unknown item %q", id, c.Key, c.GivesItem)
			}
		}
	}

	if enc := st.Encounter; enc != nil {
		if _, ok := s.Enemies[enc.Enemy]; !ok {
			addf("stage %q references unknown enemy template %q", id, enc.Enemy)
		}
		for _, ref := range []struct{ field, target string }{
			{"on_victory", enc.OnVictory},
			{"on_fled", enc.OnFled},
		} {
			if ref.target == "" {
				addf("stage %q encounter has no %s stage", id, ref.field)
			} else if _, ok := s.Stages[ref.target]; !ok {
				addf("stage %q encounter %s references unknown stage %q", id, ref.field, ref.target)
			}
		}
	}

	if st.Ending != "" && len(st.EndingRules) > 0 {
		addf("stage %q has both a fixed ending and ending rules", id)
	}
	if st.Ending != "" && !KnownEnding(st.Ending) {
		addf("stage %q names unknown ending %q", id, st.Ending)
	}
	for i, r := range st.EndingRules {
		if !KnownEnding(r.Ending) {
			addf("stage %q ending rule %d names unknown ending %q", id, i, r.Ending)
		}
		if r.RequiresItem != "" {
			if _, ok := item.Lookup(r.RequiresItem); !ok {
				addf("stage %q ending rule %d requires unknown item %q", id, i, r.RequiresItem)
			}
		}
		last := i == len(st.EndingRules)-1
		unconditional := r.RequiresFlag == "" && r.RequiresItem == ""
		if last && !unconditional {
			addf("stage %q ending rules must end with an unconditional default", id)
		}
	}
}

// validateReachability checks both directions: every stage can reach a
// terminal (no session can get stuck), and every stage is reachable from
// the start (no dead content).
func (s *Scenario) validateReachability(ids []string, addf func(string, ...any)) {
	if len(s.Stages) == 0 {
		return
	}

	next := func(st *Stage) []string {
		var out []string
		for _, c := range st.Choices {
			out = append(out, c.Next)
		}
		if st.Encounter != nil {
			out = append(out, st.Encounter.OnVictory, st.Encounter.OnFled)
		}
		return out
	}

	reachesTerminal := func(from string) bool {
		seen := map[string]bool{from: true}
		queue := []string{from}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			st, ok := s.Stages[id]
			if !ok || st == nil {
				continue
			}
			if st.IsTerminal() {
				return true
			}
			for _, n := range next(st) {
				if n != "" && !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
		return false
	}

	for _, id := range ids {
		if s.Stages[id] != nil && !reachesTerminal(id) {
			addf("stage %q cannot reach any terminal stage", id)
		}
	}

	if _, ok := s.Stages[s.Start]; !ok {
		return
	}
	fromStart := map[string]bool{s.Start: true}
	queue := []string{s.Start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		st := s.Stages[id]
		if st == nil {
			continue
		}
		for _, n := range next(st) {
			if n != "" && !fromStart[n] {
				if _, ok := s.Stages[n]; ok {
					fromStart[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	for _, id := range ids {
		if !fromStart[id] {
			addf("stage %q is unreachable from the start", id)
		}
	}
}
