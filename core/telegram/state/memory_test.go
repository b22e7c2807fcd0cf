package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestStateLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const user = int64(42)

	assert.Equal(t, StateIdle, m.GetState(user))
	assert.False(t, m.HasState(user))

	m.SetState(user, State("awaiting_name"))
	assert.Equal(t, State("awaiting_name"), m.GetState(user))
	assert.True(t, m.HasState(user))

	m.ClearState(user)
	assert.Equal(t, StateIdle, m.GetState(user))
	assert.False(t, m.HasState(user))
}

func TestTempDataTypedAccessors(t *testing.T) {
	m := NewMemoryManager()
	const user = int64(7)

	m.SetTemp(user, "category_id", int64(3))
	m.SetTemp(user, "origin", "keyboard")

	id, ok := m.GetTempInt64(user, "category_id")
	require.True(t, ok)
	assert.Equal(t, int64(3), id)

	origin, ok := m.GetTempString(user, "origin")
	require.True(t, ok)
	assert.Equal(t, "keyboard", origin)

	// Wrong type assertion fails cleanly
	_, ok = m.GetTempInt64(user, "origin")
	assert.False(t, ok)

	m.ClearTemp(user, "category_id")
	_, ok = m.GetTemp(user, "category_id")
	assert.False(t, ok)

	m.Clear(user)
	_, ok = m.GetTemp(user, "origin")
	assert.False(t, ok)
}

func TestHandlersAreInstanceScoped(t *testing.T) {
	a := NewMemoryManager()
	b := NewMemoryManager()

	called := 0
	a.Register(State("awaiting_name"), func(tele.Context) error {
		called++
		return nil
	})
	b.Register(State("awaiting_name"), func(tele.Context) error {
		t.Fatal("handler registered on another manager must not fire")
		return nil
	})

	am, ok := a.(*memoryManager)
	require.True(t, ok)
	assert.Len(t, am.handlers, 1)

	bm := b.(*memoryManager)
	assert.Len(t, bm.handlers, 1)
	assert.NotEqual(t, &am.handlers, &bm.handlers)
	_ = called
}

func TestRegisterIgnoresNil(t *testing.T) {
	m := NewMemoryManager().(*memoryManager)
	m.Register(State("x"), nil)
	assert.Empty(t, m.handlers)
}
