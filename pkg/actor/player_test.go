package actor

import (
	"encoding/json"
	"testing"

	"github.com/jwebster45206/dream-market/pkg/item"
)

func TestNewPlayer(t *testing.T) {
	tests := []struct {
		name      string
		archetype string
		wantErr   bool
		validate  func(*testing.T, *Player)
	}{
		{
			name:      "night surgeon starts with ledger",
			archetype: "night_surgeon",
			validate: func(t *testing.T, p *Player) {
				if p.Health != 90 || p.MaxHealth != 90 {
					t.Errorf("health = %d/%d, want 90/90", p.Health, p.MaxHealth)
				}
				if p.Sanity != 80 {
					t.Errorf("sanity = %d, want 80", p.Sanity)
				}
				if !p.HasItem(item.BrokerLedger) {
					t.Error("night surgeon should start with the Broker Ledger")
				}
			},
		},
		{
			name:      "lucid magician stats",
			archetype: "lucid_magician",
			validate: func(t *testing.T, p *Player) {
				if p.Stats.Magic != 12 {
					t.Errorf("magic = %d, want 12", p.Stats.Magic)
				}
				if p.HasItem(item.BrokerLedger) {
					t.Error("only the night surgeon starts with the ledger")
				}
			},
		},
		{
			name:      "starter consumables for every class",
			archetype: "somnomancer",
			validate: func(t *testing.T, p *Player) {
				if !p.HasItem(item.DreamElixir) || !p.HasItem(item.CalmMist) {
					t.Error("expected starter Dream Elixir and Calm Mist")
				}
			},
		},
		{
			name:      "unknown archetype",
			archetype: "dream_accountant",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlayer("Tester", tt.archetype)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPlayer: %v", err)
			}
			if p.Archetype != tt.archetype {
				t.Errorf("archetype = %q, want %q", p.Archetype, tt.archetype)
			}
			tt.validate(t, p)
		})
	}
}

func TestPlayer_ApplyDamageClamps(t *testing.T) {
	p, err := NewPlayer("Tester", "insomniac")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	if defeated := p.ApplyDamage(10); defeated {
		t.Error("player should survive 10 damage")
	}
	if p.Health != 50 {
		t.Errorf("health = %d, want 50", p.Health)
	}

	if defeated := p.ApplyDamage(1000); !defeated {
		t.Error("player should be defeated by overkill damage")
	}
	if p.Health != 0 {
		t.Errorf("health = %d, want 0 (never negative)", p.Health)
	}
}

func TestPlayer_HealClampsAtMax(t *testing.T) {
	p, err := NewPlayer("Tester", "night_watch")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.ApplyDamage(30)
	p.Heal(1000)
	if p.Health != p.MaxHealth {
		t.Errorf("health = %d, want max %d", p.Health, p.MaxHealth)
	}
}

func TestPlayer_Sanity(t *testing.T) {
	p, err := NewPlayer("Tester", "insomniac")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	if !p.SpendSanity(20) {
		t.Fatal("should afford 20 sanity from 120")
	}
	if p.Sanity != 100 {
		t.Errorf("sanity = %d, want 100", p.Sanity)
	}

	if p.SpendSanity(101) {
		t.Error("overspend should be refused")
	}
	if p.Sanity != 100 {
		t.Errorf("refused spend mutated sanity: %d", p.Sanity)
	}

	p.DrainSanity(500)
	if p.Sanity != 0 {
		t.Errorf("sanity = %d, want 0 (never negative)", p.Sanity)
	}

	p.RestoreSanity(5000)
	if p.Sanity != p.MaxSanity {
		t.Errorf("sanity = %d, want max %d", p.Sanity, p.MaxSanity)
	}
}

func TestPlayer_FlagsAdditive(t *testing.T) {
	p, err := NewPlayer("Tester", "broker_novice")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	p.SetFlag("helped_child")
	p.SetFlag("defeated_warden")
	if !p.HasFlag("helped_child") || !p.HasFlag("defeated_warden") {
		t.Error("flags should persist once set")
	}
	if p.HasFlag("exploited_child") {
		t.Error("unset flag reported as set")
	}
}

func TestPlayer_JSONRoundTrip(t *testing.T) {
	p, err := NewPlayer("Vesper", "night_surgeon")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.ApplyDamage(12)
	p.DrainSanity(7)
	p.SetFlag("helped_child")
	p.Inventory.Add(item.FearShard, 2)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Player
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Name != p.Name || restored.Archetype != p.Archetype {
		t.Errorf("identity mismatch: %q/%q", restored.Name, restored.Archetype)
	}
	if restored.Health != p.Health || restored.Sanity != p.Sanity {
		t.Errorf("resources mismatch: %d/%d, want %d/%d",
			restored.Health, restored.Sanity, p.Health, p.Sanity)
	}
	if !restored.HasFlag("helped_child") {
		t.Error("flags lost in round trip")
	}
	if restored.Inventory.Count(item.FearShard) != 2 {
		t.Error("inventory lost in round trip")
	}
}

func TestArchetypes(t *testing.T) {
	all := Archetypes()
	if len(all) != 6 {
		t.Fatalf("expected 6 archetypes, got %d", len(all))
	}
	seen := make(map[SpecialKind]string)
	for _, a := range all {
		if prev, dup := seen[a.Special.Kind]; dup {
			t.Errorf("special %q shared by %q and %q", a.Special.Kind, prev, a.Key)
		}
		seen[a.Special.Kind] = a.Key
		if _, ok := ArchetypeByKey(a.Key); !ok {
			t.Errorf("ArchetypeByKey(%q) not found", a.Key)
		}
	}
}
