package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/dream-market/data"
	"github.com/jwebster45206/dream-market/pkg/actor"
	"github.com/jwebster45206/dream-market/pkg/combat"
	"github.com/jwebster45206/dream-market/pkg/item"
	"github.com/jwebster45206/dream-market/pkg/scenario"
)

// sureRoller makes every probability roll succeed and every variance roll
// maximal. Against the shipped enemies this means the player always hits
// and crits, and enemies always choose their special over a plain attack,
// so a strong archetype can clear the whole gauntlet deterministically.
type sureRoller struct{}

func (sureRoller) Roll(sides int) int     { return sides }
func (sureRoller) Range(min, max int) int { return max }
func (sureRoller) Chance(p float64) bool  { return true }

func winFight(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 20 && s.InCombat(); i++ {
		_, err := s.CombatAct(combat.Action{Kind: combat.ActionAttack})
		require.NoError(t, err)
	}
	require.False(t, s.InCombat(), "fight did not finish within 20 rounds")
}

// TestDreamMarket_FullRunToBurnedContract plays the shipped scenario end
// to end down the fighting path: arcade wraith, exploited child, atrium
// warden, slumber contract, and finally burning the contract.
func TestDreamMarket_FullRunToBurnedContract(t *testing.T) {
	scn, err := scenario.LoadScenarioFS(data.FS, data.DefaultScenario)
	require.NoError(t, err)

	p, err := actor.NewPlayer("Vesper", "night_watch")
	require.NoError(t, err)

	s, err := NewSession(scn, p, sureRoller{}, quietLogger())
	require.NoError(t, err)

	require.NoError(t, s.Choose("arcade"))
	require.True(t, s.InCombat(), "the arcade stage opens with a fight")
	winFight(t, s)
	assert.Equal(t, "lost_child", s.View().StageID)

	require.NoError(t, s.Choose("exploit"))
	assert.True(t, p.HasFlag("exploited_child"))
	assert.True(t, p.HasItem(item.FearShard))
	assert.Equal(t, "market_square", s.View().StageID)

	require.NoError(t, s.Choose("atrium"))
	winFight(t, s)
	assert.True(t, p.HasFlag("warden_defeated"), "beating the warden is recorded")
	assert.Equal(t, 2, p.Inventory.Count(item.DreamElixir), "the warden drops an elixir")
	assert.Equal(t, "atrium_heart", s.View().StageID)

	require.NoError(t, s.Choose("face"))
	winFight(t, s)
	assert.Equal(t, "final_bargain", s.View().StageID)

	// Without the ledger the resell path stays shut.
	err = s.Choose("resell")
	require.ErrorIs(t, err, ErrChoiceUnavailable)

	require.NoError(t, s.Choose("burn"))
	ending, ok := s.Ended()
	require.True(t, ok)
	assert.Equal(t, scenario.EndingBurnedContract, ending)

	// The whole gauntlet was survivable: enemy specials drain sanity and
	// agility, not health, and the shipped bestiary leans on them.
	assert.Positive(t, p.Health)
}

// TestDreamMarket_ResellRequiresLedger runs the night surgeon, who starts
// with the Broker Ledger, down the same path and takes the resell ending.
func TestDreamMarket_ResellRequiresLedger(t *testing.T) {
	scn, err := scenario.LoadScenarioFS(data.FS, data.DefaultScenario)
	require.NoError(t, err)

	p, err := actor.NewPlayer("Severine", "night_surgeon")
	require.NoError(t, err)
	require.True(t, p.HasItem(item.BrokerLedger))

	s, err := NewSession(scn, p, sureRoller{}, quietLogger())
	require.NoError(t, err)

	require.NoError(t, s.Choose("arcade"))
	winFight(t, s)
	require.NoError(t, s.Choose("help"))
	require.NoError(t, s.Choose("atrium"))
	winFight(t, s)
	require.NoError(t, s.Choose("face"))
	winFight(t, s)

	require.NoError(t, s.Choose("resell"))
	ending, ok := s.Ended()
	require.True(t, ok)
	assert.Equal(t, scenario.EndingMerchantResell, ending)
}
