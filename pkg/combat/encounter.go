package combat

import (
	"fmt"

	"github.com/jwebster45206/dream-market/pkg/actor"
	"github.com/jwebster45206/dream-market/pkg/dice"
	"github.com/jwebster45206/dream-market/pkg/item"
)

// Phase is the encounter's position in its turn cycle.
type Phase string

const (
	PhasePlayerTurn Phase = "player_turn"
	PhaseEnemyTurn  Phase = "enemy_turn"
	PhaseResolved   Phase = "resolved"
)

// Outcome is the terminal result of an encounter.
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// Combat tuning. These are deliberate design constants; the original
// balance was never published, so the numbers are chosen to keep fights
// short and agility meaningful.
const (
	baseHitChance       = 0.70
	hitChancePerAgility = 0.03
	minHitChance        = 0.10
	maxHitChance        = 0.95

	critChance     = 0.10
	critMultiplier = 2

	damageVarianceMin = -2
	damageVarianceMax = 3

	baseFleeChance       = 0.50
	fleeChancePerAgility = 0.04
	minFleeChance        = 0.10
	maxFleeChance        = 0.90

	enemySpecialChance  = 0.30
	onslaughtSanityCost = 20
	snareAgilityPenalty = 2
)

// Encounter is a single combat between the player and one enemy. It is a
// small state machine: PlayerTurn and EnemyTurn alternate inside Act until
// the encounter resolves, after which no further actions are accepted.
type Encounter struct {
	player *actor.Player
	enemy  *actor.Enemy
	roller dice.Roller

	phase   Phase
	outcome Outcome
	round   int

	specialUsed   bool
	enemyMissNext bool
	snarePenalty  int
}

// NewEncounter starts a combat in the player's turn.
func NewEncounter(p *actor.Player, e *actor.Enemy, r dice.Roller) *Encounter {
	p.Defending = false
	return &Encounter{
		player: p,
		enemy:  e,
		roller: r,
		phase:  PhasePlayerTurn,
		round:  1,
	}
}

func (enc *Encounter) Phase() Phase        { return enc.phase }
func (enc *Encounter) Round() int          { return enc.round }
func (enc *Encounter) Enemy() *actor.Enemy { return enc.enemy }

// Outcome returns the final result once the encounter has resolved.
func (enc *Encounter) Outcome() (Outcome, bool) {
	if enc.phase != PhaseResolved {
		return "", false
	}
	return enc.outcome, true
}

// Act resolves one full combat round: the player's action, terminal
// checks, then the enemy's turn if combat continues. Recoverable errors
// (invalid action, missing item, spent special) consume no turn and leave
// all combat state exactly as it was.
func (enc *Encounter) Act(a Action) ([]Event, error) {
	if enc.phase == PhaseResolved {
		return nil, ErrCombatOver
	}

	var events []Event
	switch a.Kind {
	case ActionAttack:
		events = enc.playerAttack()
	case ActionDefend:
		enc.player.Defending = true
		events = []Event{{Kind: EventDefend, Text: "You brace yourself against the next blow."}}
	case ActionUseItem:
		ev, err := enc.useItem(a.Item)
		if err != nil {
			return nil, err
		}
		events = ev
	case ActionSpecial:
		ev, err := enc.useSpecial()
		if err != nil {
			return nil, err
		}
		events = ev
	case ActionRun:
		fled, ev := enc.attemptFlee()
		events = ev
		if fled {
			return events, nil
		}
	default:
		return nil, fmt.Errorf("unknown combat action %q: %w", a.Kind, ErrInvalidAction)
	}

	// Terminal checks run after every half-turn: enemy defeat first,
	// then player defeat.
	if enc.enemy.IsDefeated() {
		events = append(events, enc.resolveVictory()...)
		return events, nil
	}

	enc.phase = PhaseEnemyTurn
	events = append(events, enc.enemyTurn()...)

	if enc.player.IsDefeated() {
		enc.resolve(OutcomeDefeat)
		events = append(events, Event{Kind: EventOutcome, Text: "You have been unmade by the dream."})
		return events, nil
	}

	enc.phase = PhasePlayerTurn
	enc.round++
	return events, nil
}

// playerAgility is the player's agility after encounter-scoped penalties.
func (enc *Encounter) playerAgility() int {
	agi := enc.player.Stats.Agility - enc.snarePenalty
	if agi < 1 {
		agi = 1
	}
	return agi
}

func hitChance(attackerAgility, defenderAgility int) float64 {
	p := baseHitChance + hitChancePerAgility*float64(attackerAgility-defenderAgility)
	if p < minHitChance {
		return minHitChance
	}
	if p > maxHitChance {
		return maxHitChance
	}
	return p
}

// rollDamage computes strength-based damage with variance, minimum 1, and
// applies the critical multiplier when the crit roll succeeds.
func (enc *Encounter) rollDamage(strength int) (dmg int, crit bool) {
	dmg = strength + enc.roller.Range(damageVarianceMin, damageVarianceMax)
	if dmg < 1 {
		dmg = 1
	}
	if enc.roller.Chance(critChance) {
		dmg *= critMultiplier
		crit = true
	}
	return dmg, crit
}

func (enc *Encounter) playerAttack() []Event {
	if !enc.roller.Chance(hitChance(enc.playerAgility(), enc.enemy.Stats.Agility)) {
		return []Event{{Kind: EventMiss, Text: "Your attack misses."}}
	}
	dmg, crit := enc.rollDamage(enc.player.Stats.Strength)
	enc.enemy.TakeDamage(dmg)
	if crit {
		return []Event{{
			Kind:   EventCrit,
			Text:   fmt.Sprintf("A seam of the dream gives way. Critical hit for %d damage.", dmg),
			Amount: dmg,
		}}
	}
	return []Event{{
		Kind:   EventHit,
		Text:   fmt.Sprintf("You hit %s for %d damage.", enc.enemy.Name, dmg),
		Amount: dmg,
	}}
}

func (enc *Encounter) useItem(name string) ([]Event, error) {
	it, known := item.Lookup(name)
	if !known || !enc.player.Inventory.Has(it.Name) {
		return nil, fmt.Errorf("no %q in inventory: %w", name, item.ErrNotFound)
	}

	var ev Event
	switch it.Effect {
	case item.EffectHeal:
		enc.player.Heal(it.Amount)
		ev = Event{
			Kind:   EventItem,
			Text:   fmt.Sprintf("You use the %s and recover %d health.", it.Name, it.Amount),
			Amount: it.Amount,
		}
	case item.EffectSanity:
		enc.player.RestoreSanity(it.Amount)
		ev = Event{
			Kind:   EventItem,
			Text:   fmt.Sprintf("You use the %s and recover %d sanity.", it.Name, it.Amount),
			Amount: it.Amount,
		}
	case item.EffectCombatDamage:
		dmg := it.Amount + enc.player.Stats.Magic/2
		enc.enemy.TakeDamage(dmg)
		ev = Event{
			Kind:   EventItem,
			Text:   fmt.Sprintf("You hurl the %s at %s for %d damage.", it.Name, enc.enemy.Name, dmg),
			Amount: dmg,
		}
	default:
		return nil, fmt.Errorf("%s: %w", it.Name, ErrItemUnusable)
	}

	if it.Consumable {
		if err := enc.player.Inventory.Remove(it.Name, 1); err != nil {
			// Has() was checked above; a failure here is a programming error.
			return nil, fmt.Errorf("consume %s: %w", it.Name, err)
		}
	}
	return []Event{ev}, nil
}

// useSpecial dispatches the player's class ability. Each archetype has
// exactly one, usable once per encounter.
func (enc *Encounter) useSpecial() ([]Event, error) {
	if enc.specialUsed {
		return nil, ErrSpecialUsed
	}
	tpl, ok := actor.ArchetypeByKey(enc.player.Archetype)
	if !ok {
		return nil, fmt.Errorf("unknown archetype %q: %w", enc.player.Archetype, ErrInvalidAction)
	}

	var events []Event
	switch tpl.Special.Kind {
	case actor.SpecialExtract:
		enc.player.Inventory.Add(item.FearShard, 1)
		events = []Event{{Kind: EventSpecial, Text: "You slice dream-membranes and extract a Fear Shard."}}
	case actor.SpecialRewrite:
		enc.enemyMissNext = true
		events = []Event{{Kind: EventSpecial, Text: "You whisper a new rule: the enemy's next attack will fail."}}
	case actor.SpecialOnslaught:
		if !enc.player.SpendSanity(onslaughtSanityCost) {
			return nil, fmt.Errorf("onslaught costs %d sanity: %w", onslaughtSanityCost, ErrInsufficientSanity)
		}
		dmg := enc.player.Stats.Strength * 5 / 2
		enc.enemy.TakeDamage(dmg)
		events = []Event{{
			Kind:   EventSpecial,
			Text:   fmt.Sprintf("You unleash a desperate onslaught for %d damage, at the cost of %d sanity.", dmg, onslaughtSanityCost),
			Amount: dmg,
		}}
	case actor.SpecialSureStrike:
		dmg := enc.player.Stats.Strength + enc.player.Stats.Magic/2
		enc.enemy.TakeDamage(dmg)
		events = []Event{{
			Kind:   EventSpecial,
			Text:   fmt.Sprintf("Your closing argument lands without fail for %d damage.", dmg),
			Amount: dmg,
		}}
	case actor.SpecialStandFast:
		heal := 10 + enc.player.Stats.Strength/2
		enc.player.Heal(heal)
		events = []Event{{
			Kind:   EventSpecial,
			Text:   fmt.Sprintf("You stand fast and recover %d health.", heal),
			Amount: heal,
		}}
	case actor.SpecialDreamSpark:
		dmg := enc.player.Stats.Magic * 3 / 2
		enc.enemy.TakeDamage(dmg)
		events = []Event{{
			Kind:   EventSpecial,
			Text:   fmt.Sprintf("A dream spark arcs into %s for %d damage.", enc.enemy.Name, dmg),
			Amount: dmg,
		}}
	default:
		return nil, fmt.Errorf("archetype %q has no special: %w", enc.player.Archetype, ErrInvalidAction)
	}

	enc.specialUsed = true
	return events, nil
}

func (enc *Encounter) attemptFlee() (bool, []Event) {
	p := baseFleeChance + fleeChancePerAgility*float64(enc.playerAgility()-enc.enemy.Stats.Agility)
	if p < minFleeChance {
		p = minFleeChance
	}
	if p > maxFleeChance {
		p = maxFleeChance
	}
	if enc.roller.Chance(p) {
		enc.resolve(OutcomeFled)
		return true, []Event{{Kind: EventFlee, Text: "You slip through dream-threads and escape the fight."}}
	}
	return false, []Event{{Kind: EventFleeFailed, Text: "You try to run, but the dream pulls you back."}}
}

// enemyTurn runs the enemy's half of the round. The player's defending
// flag is cleared here, after exactly one enemy turn, whether or not any
// damage was applied.
func (enc *Encounter) enemyTurn() []Event {
	defer func() { enc.player.Defending = false }()

	if enc.enemyMissNext {
		enc.enemyMissNext = false
		return []Event{{Kind: EventMiss, Text: "The rewritten rule holds: the enemy's attack falters."}}
	}

	if enc.enemy.Special != "" && enc.roller.Chance(enemySpecialChance) {
		return enc.enemySpecial()
	}
	return enc.enemyAttack()
}

func (enc *Encounter) enemyAttack() []Event {
	if !enc.roller.Chance(hitChance(enc.enemy.Stats.Agility, enc.playerAgility())) {
		return []Event{{Kind: EventMiss, Text: fmt.Sprintf("%s lunges but misses.", enc.enemy.Name)}}
	}
	dmg, crit := enc.rollDamage(enc.enemy.Stats.Strength)
	if enc.player.Defending {
		dmg = (dmg + 1) / 2
	}
	enc.player.ApplyDamage(dmg)
	if crit {
		return []Event{{
			Kind:   EventCrit,
			Text:   fmt.Sprintf("%s tears through your guard for %d damage.", enc.enemy.Name, dmg),
			Amount: dmg,
		}}
	}
	return []Event{{
		Kind:   EventHit,
		Text:   fmt.Sprintf("%s hits you for %d damage.", enc.enemy.Name, dmg),
		Amount: dmg,
	}}
}

func (enc *Encounter) enemySpecial() []Event {
	switch enc.enemy.Special {
	case actor.EnemyBellow:
		drain := 10 + enc.enemy.Stats.Magic
		enc.player.DrainSanity(drain)
		return []Event{{
			Kind:   EventSanityLoss,
			Text:   fmt.Sprintf("%s bellows. Your mind frays, losing %d sanity.", enc.enemy.Name, drain),
			Amount: drain,
		}}
	case actor.EnemySnare:
		enc.snarePenalty += snareAgilityPenalty
		return []Event{{
			Kind:   EventSnare,
			Text:   fmt.Sprintf("%s ensnares dream-threads. Your agility drops for this fight.", enc.enemy.Name),
			Amount: snareAgilityPenalty,
		}}
	default:
		return enc.enemyAttack()
	}
}

func (enc *Encounter) resolveVictory() []Event {
	enc.resolve(OutcomeVictory)
	events := []Event{{Kind: EventOutcome, Text: fmt.Sprintf("You defeated %s.", enc.enemy.Name)}}
	for _, drop := range enc.enemy.Drops {
		enc.player.Inventory.Add(drop, 1)
		events = append(events, Event{
			Kind: EventDrop,
			Text: fmt.Sprintf("The dream spills a %s. You collect it.", drop),
		})
	}
	return events
}

func (enc *Encounter) resolve(o Outcome) {
	enc.phase = PhaseResolved
	enc.outcome = o
	enc.player.Defending = false
}
