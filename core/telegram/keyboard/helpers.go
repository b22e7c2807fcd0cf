// Package keyboard builds telebot markup from plain data, so handlers can
// declare screens without touching telebot row plumbing.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes one inline button: visible text, callback unique
// key, and an optional payload.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

func (b InlineBtn) inline(markup *tele.ReplyMarkup) tele.InlineButton {
	return *markup.Data(b.Text, b.Unique, b.Data).Inline()
}

// ReplyButtons builds a resizable reply keyboard from rows of labels.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, labels := range rows {
		row := make([]tele.Btn, 0, len(labels))
		for _, label := range labels {
			row = append(row, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(row...))
	}
	markup.Reply(keyboard...)
	return markup
}

// InlineButtons builds an inline keyboard with one button per row.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, b := range buttons {
		AppendRow(markup, b)
	}
	return markup
}

// InlineButtonsRows builds an inline keyboard from explicit rows.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, row := range rows {
		AppendRow(markup, row...)
	}
	return markup
}

// InlineButtonsNPerRow splits a flat button list into rows of up to n.
// n <= 1 degrades to one button per row.
func InlineButtonsNPerRow(buttons []InlineBtn, n int) *tele.ReplyMarkup {
	if n <= 1 {
		return InlineButtons(buttons)
	}
	markup := &tele.ReplyMarkup{}
	for len(buttons) > 0 {
		take := n
		if take > len(buttons) {
			take = len(buttons)
		}
		AppendRow(markup, buttons[:take]...)
		buttons = buttons[take:]
	}
	return markup
}

// AppendRow adds one more row of buttons to an already built inline markup.
func AppendRow(markup *tele.ReplyMarkup, row ...InlineBtn) *tele.ReplyMarkup {
	if markup == nil {
		markup = &tele.ReplyMarkup{}
	}
	buttons := make([]tele.InlineButton, 0, len(row))
	for _, b := range row {
		buttons = append(buttons, b.inline(markup))
	}
	markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	return markup
}
