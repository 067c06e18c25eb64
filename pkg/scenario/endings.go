package scenario

// EndingID identifies one of the scenario's endings.
type EndingID string

const (
	EndingMerchantResell EndingID = "merchant_resell"
	EndingBurnedContract EndingID = "burned_contract"
	EndingBoundContract  EndingID = "bound_contract"
	EndingNeutral        EndingID = "neutral"
	EndingHelping        EndingID = "helping"
	EndingExploit        EndingID = "exploit"
	// EndingDeath is reached only through combat defeat; no stage names it.
	EndingDeath EndingID = "death"
)

var knownEndings = map[EndingID]bool{
	EndingMerchantResell: true,
	EndingBurnedContract: true,
	EndingBoundContract:  true,
	EndingNeutral:        true,
	EndingHelping:        true,
	EndingExploit:        true,
	EndingDeath:          true,
}

// KnownEnding reports whether id is one of the defined endings.
func KnownEnding(id EndingID) bool { return knownEndings[id] }

// PlayerView is the minimal read surface ending rules and choice gates need.
// It avoids importing the full player type here.
type PlayerView interface {
	HasFlag(name string) bool
	HasItem(name string) bool
}

// EndingRule is one conditional clause of a terminal stage. A rule with no
// requirements always matches and acts as the default.
type EndingRule struct {
	RequiresFlag string   `yaml:"requires_flag,omitempty" json:"requires_flag,omitempty"`
	RequiresItem string   `yaml:"requires_item,omitempty" json:"requires_item,omitempty"`
	Ending       EndingID `yaml:"ending" json:"ending"`
}

// Matches reports whether the player satisfies every requirement on the rule.
func (r EndingRule) Matches(v PlayerView) bool {
	if r.RequiresFlag != "" && !v.HasFlag(r.RequiresFlag) {
		return false
	}
	if r.RequiresItem != "" && !v.HasItem(r.RequiresItem) {
		return false
	}
	return true
}

// ResolveEnding evaluates a terminal stage for the given player. A fixed
// ending wins outright; otherwise rules are checked in order and the first
// match decides. Validated graphs always end the rule list with an
// unconditional default, so the fallback is never reached in practice.
func (st *Stage) ResolveEnding(v PlayerView) EndingID {
	if st.Ending != "" {
		return st.Ending
	}
	for _, r := range st.EndingRules {
		if r.Matches(v) {
			return r.Ending
		}
	}
	return EndingNeutral
}
