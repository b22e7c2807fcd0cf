package handlers

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/ksokolovskiy/ks-buy-bot/core/telegram/helpers"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/keyboard"
)

// MainKeyboard returns the persistent reply keyboard sent at /start.
func MainKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnAddItem, BtnShowList, BtnToggleBought},
	)
}

// Start seeds the user's catalog on first contact and shows the main menu.
func (h *Handlers) Start(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := h.svc.EnsureCatalog(ctx, c.Sender().ID); err != nil {
		return err
	}
	return tghelpers.SendText(c, MsgWelcome, &tele.SendOptions{ReplyMarkup: MainKeyboard()})
}

// Test answers everyone, allowlisted or not, to confirm the bot is alive.
func (h *Handlers) Test(c tele.Context) error {
	return tghelpers.SendText(c, MsgTestOK)
}
