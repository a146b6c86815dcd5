package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	t.Parallel()

	a := MustLayout("a", 'a', Uint32("x"))
	b := MustLayout("b", 'b', Hash256("h"))

	s, err := NewSchema(a, b)
	require.NoError(t, err)

	got, ok := s.Layout("b")
	require.True(t, ok)
	require.Same(t, b, got)

	got, ok = s.ByTag('a')
	require.True(t, ok)
	require.Same(t, a, got)

	_, ok = s.ByTag('z')
	require.False(t, ok)

	require.Equal(t, []*Layout{a, b}, s.Layouts())

	// callers cannot reorder the table
	layouts := s.Layouts()
	layouts[0] = nil
	require.Same(t, a, s.Layouts()[0])
}

func TestNewSchema_Duplicates(t *testing.T) {
	t.Parallel()

	_, err := NewSchema(MustLayout("a", 'a'), MustLayout("a", 'b'))
	require.ErrorContains(t, err, "duplicate layout name")

	_, err = NewSchema(MustLayout("a", 'a'), MustLayout("b", 'a'))
	require.ErrorContains(t, err, "share tag")

	_, err = NewSchema(nil)
	require.Error(t, err)

	require.Panics(t, func() { MustSchema(MustLayout("a", 'a'), MustLayout("a", 'a')) })
}
