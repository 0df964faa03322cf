package library

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestIndex_Entries(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	sut := NewIndex([]string{"a", "b", "c"})
	a.Equal(3, sut.Len())
	a.Equal([]string{"a", "b", "c"}, sut.Names())

	tests := []struct {
		id     int
		name   string
		prevId int
		nextId int
	}{
		{0, "a", 0, 1},
		{1, "b", 0, 2},
		{2, "c", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := sut.EntryAt(tt.id)
			r.Nil(err)
			a.Equal(tt.name, entry.Name)
			a.Equal(3, entry.Total)
			a.Equal(tt.prevId, entry.PrevId)
			a.Equal(tt.nextId, entry.NextId)

			byName, err := sut.EntryFor(tt.name)
			r.Nil(err)
			a.Equal(entry, byName)

			id, ok := sut.IdOf(tt.name)
			a.True(ok)
			a.Equal(tt.id, id)
		})
	}
}

func TestIndex_SingleEntry(t *testing.T) {
	entry, err := NewIndex([]string{"only"}).EntryAt(0)
	require.Nil(t, err)
	assert.Equal(t, 0, entry.PrevId)
	assert.Equal(t, 0, entry.NextId)
}

func TestIndex_NotFound(t *testing.T) {
	a := assert.New(t)

	sut := NewIndex([]string{"a"})

	_, err := sut.EntryAt(-1)
	a.ErrorIs(err, ErrNotInIndex)
	_, err = sut.EntryAt(1)
	a.ErrorIs(err, ErrNotInIndex)
	_, err = sut.EntryFor("b")
	a.ErrorIs(err, ErrNotInIndex)
	_, ok := sut.IdOf("b")
	a.False(ok)

	_, err = NewIndex(nil).EntryAt(0)
	a.ErrorIs(err, ErrNotInIndex)
}

func TestIndex_IsASnapshot(t *testing.T) {
	names := []string{"a", "b"}
	sut := NewIndex(names)

	names[0] = "changed"
	sut.Names()[1] = "changed too"

	assert.Equal(t, []string{"a", "b"}, sut.Names())
}
