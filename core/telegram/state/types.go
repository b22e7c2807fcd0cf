package state

import tele "gopkg.in/telebot.v4"

// State identifies one step of a user conversation, e.g. waiting for an
// item name after the department was chosen.
type State string

// StateIdle indicates there is no active conversation with the user.
const StateIdle State = "idle"

// Session holds the current conversation step and its scratch values
// (chosen department, pending input) for one user.
type Session struct {
	State    State
	TempData map[string]interface{}
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	Get(userID int64) *Session
	SetTemp(userID int64, key string, value interface{})
	GetTemp(userID int64, key string) (interface{}, bool)
	GetTempInt64(userID int64, key string) (int64, bool)
	GetTempString(userID int64, key string) (string, bool)
	ClearTemp(userID int64, key string)
	Clear(userID int64)

	SetState(userID int64, st State)
	GetState(userID int64) State
	HasState(userID int64) bool
	ClearState(userID int64)

	// Register binds a handler to a state on this manager instance.
	Register(st State, h tele.HandlerFunc)
	// Dispatch runs the handler registered for the user's current state.
	Dispatch(c tele.Context) error
}
