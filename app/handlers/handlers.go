package handlers

import (
	tele "gopkg.in/telebot.v4"

	coretelegram "github.com/ksokolovskiy/ks-buy-bot/core/telegram"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/commands"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/state"

	"github.com/ksokolovskiy/ks-buy-bot/app/shoplist"
)

// Callback keys routed through the registry.
const (
	cbListCats   = "shop_cats"
	cbListView   = "shop_view"
	cbEditToggle = "shop_edit"
	cbItemToggle = "shop_tog"
	cbItemDelete = "shop_del"
	cbAddDept    = "add_dept"
	cbAddCancel  = "add_cancel"
)

// StateAwaitingItemName waits for the product name after a department
// has been chosen in the add-item conversation.
const StateAwaitingItemName state.State = "additem:awaiting_name"

// Handlers binds the shopping list service to Telegram endpoints.
type Handlers struct {
	svc *shoplist.Service
	fsm state.Manager
}

// New constructs the handler set.
func New(svc *shoplist.Service, fsm state.Manager) *Handlers {
	return &Handlers{svc: svc, fsm: fsm}
}

// Register wires commands, callbacks, conversation states, and the text
// fallback into the registry.
func (h *Handlers) Register(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Запустить бота и показать меню",
	})
	reg.RegisterCommand("/test", commands.Command{
		Handler:     h.Test,
		Description: "Проверить, что бот отвечает",
		Public:      true,
	})
	reg.RegisterCommand("/add_cat", commands.Command{
		Handler:     h.AddCategory,
		Description: "Добавить категорию",
	})
	reg.RegisterCommand("/del_cat", commands.Command{
		Handler:     h.DeleteCategory,
		Description: "Удалить категорию",
		Hidden:      true,
	})
	reg.RegisterCommand("/clear_bought", commands.Command{
		Handler:     h.ClearBought,
		Description: "Удалить все купленные товары",
	})

	_ = reg.RegisterCallback(cbListCats, h.CallbackListCats)
	_ = reg.RegisterCallback(cbListView, h.CallbackListView)
	_ = reg.RegisterCallback(cbEditToggle, h.CallbackEditToggle)
	_ = reg.RegisterCallback(cbItemToggle, h.CallbackItemToggle)
	_ = reg.RegisterCallback(cbItemDelete, h.CallbackItemDelete)
	_ = reg.RegisterCallback(cbAddDept, h.CallbackDepartmentChosen)
	_ = reg.RegisterCallback(cbAddCancel, h.CallbackAddCancel)

	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: MsgUnsupportedAction})
	})
	reg.SetTextFallback(h.TextFallback)

	h.fsm.Register(StateAwaitingItemName, h.ItemNameEntered)
}

// TextFallback routes reply keyboard presses; any other free text is ignored.
func (h *Handlers) TextFallback(c tele.Context) error {
	switch c.Text() {
	case BtnAddItem:
		return h.StartAddItem(c)
	case BtnShowList:
		return h.ShowList(c)
	case BtnToggleBought:
		return h.ToggleBoughtView(c)
	case BtnCancel:
		h.fsm.Clear(c.Sender().ID)
		return c.Send(MsgCancelled)
	}
	return nil
}
