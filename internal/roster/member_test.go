package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/stat"
)

func TestPartyLookUp(t *testing.T) {
	malu := NewMember("Malu", stat.Of(map[stat.Tag]float64{stat.TagMove: 4}))
	p := NewParty(malu, NewMember("Alex", nil))

	got, err := p.LookUp(context.Background(), "malu")
	require.NoError(t, err)
	assert.Same(t, malu, got)
	assert.Equal(t, 4.0, got.Base.Get(stat.TagMove))

	_, err = p.LookUp(context.Background(), "Nobody")
	require.ErrorIs(t, err, ErrUnknownMember)
}

func TestPartyMembersSorted(t *testing.T) {
	p := NewParty(NewMember("Zed", nil), NewMember("Alex", nil))
	p.Add(NewMember("Malu", nil))

	members := p.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "Alex", members[0].Name)
	assert.Equal(t, "Malu", members[1].Name)
	assert.Equal(t, "Zed", members[2].Name)
	assert.Equal(t, 3, p.Len())
}

func TestAddFillsMissingBase(t *testing.T) {
	p := NewParty()
	p.Add(&Member{Name: "Bare"})

	m, err := p.LookUp(context.Background(), "bare")
	require.NoError(t, err)
	require.NotNil(t, m.Base)
	assert.Equal(t, 1.0, m.Base.Get(stat.TagDamage))
}
