package strategy

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/fkuefler/blackjack-lab/src/types"
)

func recordsOf(actions ...types.Action) []types.Record {
	out := make([]types.Record, len(actions))
	for i, a := range actions {
		out[i] = types.Record{PlayerHand: "16", DealerUpcard: "10", Action: a, Line: i + 9}
	}
	return out
}

func TestBuildMapping_HitAndSplit(t *testing.T) {
	m := BuildMapping(recordsOf(types.Split, types.Hit, types.Split))

	assert.Equal(t, []types.Action{types.Hit, types.Split}, m.Actions())
	assert.Equal(t, []string{"4CAF50", "2196F3"}, m.Colors())
	i, ok := m.Index(types.Hit)
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	i, ok = m.Index(types.Split)
	assert.True(t, ok)
	assert.Equal(t, 1, i, "no gap for the absent Stand and Double")
	_, ok = m.Index(types.Stand)
	assert.False(t, ok)
	assert.Equal(t, "Sp", m.Abbreviation(types.Split))
	assert.Equal(t, "", m.Abbreviation(types.Surrender))
	assert.Equal(t, "2196F3", m.Color(types.Split))
	assert.Equal(t, "", m.Color(types.Stand))
}

func TestBuildMapping_UnknownLabelsStayUnmapped(t *testing.T) {
	m := BuildMapping(recordsOf("Insurance", types.Stand, "", "Insurance"))
	assert.Equal(t, []types.Action{types.Stand}, m.Actions())
	_, ok := m.Index("Insurance")
	assert.False(t, ok)
	assert.Equal(t, "", m.Abbreviation("Insurance"))
}

func TestBuildMapping_EntriesAreACopy(t *testing.T) {
	m := BuildMapping(recordsOf(types.Hit))
	e := m.Entries()
	e[0].Abbreviation = "X"
	assert.Equal(t, "H", m.Abbreviation(types.Hit))
}

// genActions draws action lists over the canonical set plus one unknown label.
func genActions() gopter.Gen {
	labels := append(append([]types.Action(nil), types.CanonicalActions...), "Insurance")
	return gen.SliceOf(gen.IntRange(0, len(labels)-1)).Map(func(idx []int) []types.Action {
		out := make([]types.Action, len(idx))
		for i, v := range idx {
			out[i] = labels[v]
		}
		return out
	})
}

func canonicalRank(a types.Action) int {
	for i, c := range types.CanonicalActions {
		if c == a {
			return i
		}
	}
	return -1
}

func TestMappingProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("indices follow canonical priority regardless of data order", prop.ForAll(
		func(actions []types.Action) bool {
			m := BuildMapping(recordsOf(actions...))
			entries := m.Entries()
			for i, e := range entries {
				if e.Index != i {
					return false
				}
				if i > 0 && canonicalRank(entries[i-1].Action) >= canonicalRank(e.Action) {
					return false
				}
			}
			return true
		},
		genActions(),
	))

	properties.Property("legend entries equal the distinct canonical labels present", prop.ForAll(
		func(actions []types.Action) bool {
			want := map[types.Action]bool{}
			for _, a := range actions {
				if types.IsCanonical(a) {
					want[a] = true
				}
			}
			got := BuildMapping(recordsOf(actions...)).Actions()
			if len(got) != len(want) {
				return false
			}
			for _, a := range got {
				if !want[a] {
					return false
				}
			}
			return true
		},
		genActions(),
	))

	properties.Property("colors line up with indices", prop.ForAll(
		func(actions []types.Action) bool {
			m := BuildMapping(recordsOf(actions...))
			colors := m.Colors()
			for _, e := range m.Entries() {
				hex, _ := types.ColorHex(e.Action)
				if colors[e.Index] != hex {
					return false
				}
			}
			return true
		},
		genActions(),
	))

	properties.TestingRun(t)
}
