package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/jwebster45206/dream-market/data"
	"github.com/jwebster45206/dream-market/pkg/actor"
)

// fakeView is a minimal PlayerView for rule and gate tests.
type fakeView struct {
	flags map[string]bool
	items map[string]bool
}

func (v fakeView) HasFlag(name string) bool { return v.flags[name] }
func (v fakeView) HasItem(name string) bool { return v.items[name] }

// validScenario is a minimal well-formed graph used as the base for
// validation tests.
func validScenario() *Scenario {
	return &Scenario{
		Name:  "test",
		Start: "entry",
		Enemies: map[string]actor.EnemyTemplate{
			"wraith": {Name: "Wraith", Health: 10},
		},
		Stages: map[string]*Stage{
			"entry": {
				Description: "a door",
				Choices: []Choice{
					{Key: "fight", Prompt: "fight", Next: "pit"},
					{Key: "leave", Prompt: "leave", Next: "end"},
				},
			},
			"pit": {
				Description: "a pit",
				Encounter: &Encounter{
					Enemy:     "wraith",
					OnVictory: "end",
					OnFled:    "entry",
				},
			},
			"end": {
				Description: "an end",
				Ending:      EndingNeutral,
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string // substring of the aggregated error; empty means valid
	}{
		{
			name:   "valid graph",
			mutate: func(s *Scenario) {},
		},
		{
			name:    "missing start stage",
			mutate:  func(s *Scenario) { s.Start = "nowhere" },
			wantErr: `start stage "nowhere" does not exist`,
		},
		{
			name: "choice references unknown stage",
			mutate: func(s *Scenario) {
				s.Stages["entry"].Choices[0].Next = "void"
			},
			wantErr: `references unknown stage "void"`,
		},
		{
			name: "duplicate choice keys",
			mutate: func(s *Scenario) {
				s.Stages["entry"].Choices[1].Key = "fight"
			},
			wantErr: `duplicate choice key "fight"`,
		},
		{
			name: "encounter references unknown enemy",
			mutate: func(s *Scenario) {
				s.Stages["pit"].Encounter.Enemy = "dragon"
			},
			wantErr: `unknown enemy template "dragon"`,
		},
		{
			name: "choice gives unknown item",
			mutate: func(s *Scenario) {
				s.Stages["entry"].Choices[1].GivesItem = "Moon Cheese"
			},
			wantErr: `choice "leave" gives unknown item "Moon Cheese"`,
		},
		{
			name: "choice requires unknown item",
			mutate: func(s *Scenario) {
				s.Stages["entry"].Choices[1].RequiresItem = "Moon Cheese"
			},
			wantErr: `choice "leave" requires unknown item "Moon Cheese"`,
		},
		{
			name: "enemy drops unknown item",
			mutate: func(s *Scenario) {
				w := s.Enemies["wraith"]
				w.Drops = []string{"Moon Cheese"}
				s.Enemies["wraith"] = w
			},
			wantErr: `enemy template "wraith" drops unknown item "Moon Cheese"`,
		},
		{
			name: "ending rule requires unknown item",
			mutate: func(s *Scenario) {
				s.Stages["end"].Ending = ""
				s.Stages["end"].EndingRules = []EndingRule{
					{RequiresItem: "Moon Cheese", Ending: EndingMerchantResell},
					{Ending: EndingNeutral},
				}
			},
			wantErr: `ending rule 0 requires unknown item "Moon Cheese"`,
		},
		{
			name: "stage with two shapes",
			mutate: func(s *Scenario) {
				s.Stages["pit"].Ending = EndingNeutral
			},
			wantErr: "must be exactly one of choice, encounter, or terminal",
		},
		{
			name: "fixed ending and rules together",
			mutate: func(s *Scenario) {
				s.Stages["end"].EndingRules = []EndingRule{{Ending: EndingNeutral}}
			},
			wantErr: "both a fixed ending and ending rules",
		},
		{
			name: "rules without unconditional default",
			mutate: func(s *Scenario) {
				s.Stages["end"].Ending = ""
				s.Stages["end"].EndingRules = []EndingRule{
					{RequiresFlag: "helped", Ending: EndingHelping},
				}
			},
			wantErr: "must end with an unconditional default",
		},
		{
			name: "unknown ending id",
			mutate: func(s *Scenario) {
				s.Stages["end"].Ending = "ascension"
			},
			wantErr: `unknown ending "ascension"`,
		},
		{
			name: "stage cannot reach a terminal",
			mutate: func(s *Scenario) {
				s.Stages["loop_a"] = &Stage{
					Description: "a",
					Choices:     []Choice{{Key: "on", Prompt: "on", Next: "loop_b"}},
				}
				s.Stages["loop_b"] = &Stage{
					Description: "b",
					Choices:     []Choice{{Key: "back", Prompt: "back", Next: "loop_a"}},
				}
				s.Stages["entry"].Choices[0].Next = "loop_a"
			},
			wantErr: "cannot reach any terminal stage",
		},
		{
			name: "stage unreachable from start",
			mutate: func(s *Scenario) {
				s.Stages["orphan"] = &Stage{Description: "lost", Ending: EndingNeutral}
			},
			wantErr: `stage "orphan" is unreachable from the start`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validScenario()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tc.wantErr)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error is %T, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidate_AggregatesProblems(t *testing.T) {
	s := validScenario()
	s.Start = "nowhere"
	s.Stages["entry"].Choices[0].Next = "void"
	s.Stages["pit"].Encounter.Enemy = "dragon"

	err := s.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
	if len(verr.Problems) < 3 {
		t.Errorf("Problems = %d, want at least 3: %v", len(verr.Problems), verr.Problems)
	}
}

func TestResolveEnding(t *testing.T) {
	dawn := &Stage{
		EndingRules: []EndingRule{
			{RequiresFlag: "helped_child", Ending: EndingHelping},
			{RequiresFlag: "exploited_child", Ending: EndingExploit},
			{Ending: EndingNeutral},
		},
	}

	tests := []struct {
		name string
		view fakeView
		want EndingID
	}{
		{
			name: "first matching rule wins",
			view: fakeView{flags: map[string]bool{"helped_child": true, "exploited_child": true}},
			want: EndingHelping,
		},
		{
			name: "later rule when earlier misses",
			view: fakeView{flags: map[string]bool{"exploited_child": true}},
			want: EndingExploit,
		},
		{
			name: "unconditional default",
			view: fakeView{},
			want: EndingNeutral,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dawn.ResolveEnding(tc.view); got != tc.want {
				t.Errorf("ResolveEnding() = %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("fixed ending ignores rules state", func(t *testing.T) {
		st := &Stage{Ending: EndingBurnedContract}
		if got := st.ResolveEnding(fakeView{}); got != EndingBurnedContract {
			t.Errorf("ResolveEnding() = %q, want burned_contract", got)
		}
	})

	t.Run("item-gated rule", func(t *testing.T) {
		st := &Stage{EndingRules: []EndingRule{
			{RequiresItem: "Broker Ledger", Ending: EndingMerchantResell},
			{Ending: EndingNeutral},
		}}
		view := fakeView{items: map[string]bool{"Broker Ledger": true}}
		if got := st.ResolveEnding(view); got != EndingMerchantResell {
			t.Errorf("ResolveEnding() = %q, want merchant_resell", got)
		}
	})
}

func TestChoiceAvailable(t *testing.T) {
	c := Choice{Key: "resell", RequiresItem: "Broker Ledger"}
	if c.Available(fakeView{}) {
		t.Error("choice should be gated without the required item")
	}
	if !c.Available(fakeView{items: map[string]bool{"Broker Ledger": true}}) {
		t.Error("choice should be available with the required item")
	}

	f := Choice{Key: "inner", RequiresFlag: "warden_defeated"}
	if f.Available(fakeView{}) {
		t.Error("choice should be gated without the required flag")
	}
	if !f.Available(fakeView{flags: map[string]bool{"warden_defeated": true}}) {
		t.Error("choice should be available with the required flag")
	}
}

// TestLoadScenarioFS_DreamMarket loads the embedded shipping scenario and
// spot-checks its structure. A parse or validation regression in the data
// file fails here rather than at game startup.
func TestLoadScenarioFS_DreamMarket(t *testing.T) {
	s, err := LoadScenarioFS(data.FS, data.DefaultScenario)
	if err != nil {
		t.Fatalf("LoadScenarioFS: %v", err)
	}

	if s.Name != "Dream Market" {
		t.Errorf("name = %q, want Dream Market", s.Name)
	}
	if s.Start != "wake" {
		t.Errorf("start = %q, want wake", s.Start)
	}
	if len(s.Enemies) != 4 {
		t.Errorf("enemies = %d, want 4", len(s.Enemies))
	}

	warden, ok := s.EnemyTemplate("atrium_warden")
	if !ok {
		t.Fatal("missing atrium_warden template")
	}
	if warden.Health != 75 || warden.Special != actor.EnemyBellow {
		t.Errorf("atrium_warden = %+v, want 75 health and bellow", warden)
	}

	bargain, ok := s.Stage("final_bargain")
	if !ok {
		t.Fatal("missing final_bargain stage")
	}
	resell, ok := bargain.ChoiceByKey("resell")
	if !ok {
		t.Fatal("final_bargain has no resell choice")
	}
	if resell.RequiresItem != "Broker Ledger" {
		t.Errorf("resell gate = %q, want Broker Ledger", resell.RequiresItem)
	}

	dawn, ok := s.Stage("dawn")
	if !ok {
		t.Fatal("missing dawn stage")
	}
	if !dawn.IsTerminal() {
		t.Error("dawn should be terminal")
	}
	last := dawn.EndingRules[len(dawn.EndingRules)-1]
	if last.Ending != EndingNeutral || last.RequiresFlag != "" || last.RequiresItem != "" {
		t.Errorf("dawn default rule = %+v, want unconditional neutral", last)
	}
}
