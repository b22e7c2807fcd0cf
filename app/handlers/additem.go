package handlers

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/callbacks"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/format"
	tghelpers "github.com/ksokolovskiy/ks-buy-bot/core/telegram/helpers"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/keyboard"
)

const tempDepartmentKey = "additem_department"

// StartAddItem opens the department picker for a new item.
func (h *Handlers) StartAddItem(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	cats, err := h.svc.Categories(ctx, userID)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		if err := h.svc.EnsureCatalog(ctx, userID); err != nil {
			return err
		}
		if cats, err = h.svc.Categories(ctx, userID); err != nil {
			return err
		}
	}

	buttons := make([]keyboard.InlineBtn, 0, len(cats))
	for _, cat := range cats {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   cat.Name,
			Unique: cbAddDept,
			Data:   fmt.Sprintf("%d", cat.ID),
		})
	}
	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	keyboard.AppendRow(markup, keyboard.InlineBtn{Text: BtnCancel, Unique: cbAddCancel})

	return tghelpers.SendText(c, MsgChooseDepartment, &tele.SendOptions{ReplyMarkup: markup})
}

// CallbackDepartmentChosen stores the chosen department and asks for the name.
func (h *Handlers) CallbackDepartmentChosen(c tele.Context) error {
	catID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	cat, err := h.svc.Category(ctx, userID, catID)
	if err != nil {
		return err
	}
	if cat == nil {
		return c.Respond(&tele.CallbackResponse{Text: MsgCategoryNotFound})
	}

	h.fsm.SetTemp(userID, tempDepartmentKey, cat.Name)
	h.fsm.SetState(userID, StateAwaitingItemName)

	text := fmt.Sprintf("Отдел: %s\n\n%s", format.EscapeV1(cat.Name), MsgEnterItemName)
	return c.Edit(text)
}

// CallbackAddCancel aborts the add-item conversation.
func (h *Handlers) CallbackAddCancel(c tele.Context) error {
	h.fsm.Clear(c.Sender().ID)
	return c.Edit(MsgCancelled)
}

// ItemNameEntered finishes the conversation: the message text becomes the
// new item in the previously chosen department.
func (h *Handlers) ItemNameEntered(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	if text == BtnCancel {
		h.fsm.Clear(userID)
		return tghelpers.SendText(c, MsgCancelled)
	}

	department, ok := h.fsm.GetTempString(userID, tempDepartmentKey)
	h.fsm.Clear(userID)
	if !ok || text == "" {
		return tghelpers.SendText(c, MsgCancelled)
	}

	ctx := tghelpers.BuildContext(c)
	if _, err := h.svc.AddItem(ctx, userID, text, department); err != nil {
		return err
	}
	return tghelpers.SendText(c, MsgItemAdded)
}
