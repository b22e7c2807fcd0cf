// Package state provides a lightweight FSM/session manager for Telegram bots.
// Conversation handlers are registered on the manager instance, so two bots
// in one process never share dispatch tables.
package state
