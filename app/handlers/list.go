package handlers

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/callbacks"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/format"
	tghelpers "github.com/ksokolovskiy/ks-buy-bot/core/telegram/helpers"
	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/keyboard"

	"github.com/ksokolovskiy/ks-buy-bot/app/storage"
)

// refAll addresses the whole-list view; an empty ref is the category menu,
// anything else is a decimal category ID.
const refAll = "all"

// Telegram rejects keyboards past ~100 buttons, stay below with margin.
const maxListRows = 90

// ShowList handles the reply keyboard button and always posts a fresh
// message so the list lands at the bottom of the chat.
func (h *Handlers) ShowList(c tele.Context) error {
	return h.renderList(c, "", true)
}

// ToggleBoughtView flips bought-item visibility and re-renders the last view.
func (h *Handlers) ToggleBoughtView(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	// Drop the button press message to keep the chat clean
	_ = c.Delete()

	view := h.svc.ViewState(ctx, userID)
	view.ShowBought = !view.ShowBought
	if err := h.svc.SaveViewState(ctx, userID, view); err != nil {
		return err
	}
	return h.renderList(c, view.LastRef, true)
}

// ClearBought removes every bought item from the user's list.
func (h *Handlers) ClearBought(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	n, err := h.svc.ClearBought(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return tghelpers.SendText(c, MsgNoBoughtItems)
	}
	return tghelpers.SendText(c, MsgBoughtCleared)
}

// CallbackListCats returns to the category menu and leaves edit mode.
func (h *Handlers) CallbackListCats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	view := h.svc.ViewState(ctx, userID)
	if view.EditMode {
		view.EditMode = false
		if err := h.svc.SaveViewState(ctx, userID, view); err != nil {
			return err
		}
	}
	return h.renderList(c, "", false)
}

// CallbackListView opens the whole list or one category.
func (h *Handlers) CallbackListView(c tele.Context) error {
	return h.renderList(c, callbacks.CallbackPayload(c), false)
}

// CallbackEditToggle switches between toggle and delete modes in place.
func (h *Handlers) CallbackEditToggle(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	view := h.svc.ViewState(ctx, userID)
	view.EditMode = !view.EditMode
	if err := h.svc.SaveViewState(ctx, userID, view); err != nil {
		return err
	}
	return h.renderList(c, callbacks.CallbackPayload(c), false)
}

// CallbackItemToggle flips one item's bought state and refreshes the view.
func (h *Handlers) CallbackItemToggle(c tele.Context) error {
	itemID, ref, err := callbacks.PayloadIDRef(c, "|")
	if err != nil {
		return err
	}
	ctx := tghelpers.BuildContext(c)
	if _, err := h.svc.ToggleItem(ctx, itemID, c.Sender().ID); err != nil {
		return err
	}
	return h.renderList(c, ref, false)
}

// CallbackItemDelete removes one item and stays in the current view.
func (h *Handlers) CallbackItemDelete(c tele.Context) error {
	itemID, ref, err := callbacks.PayloadIDRef(c, "|")
	if err != nil {
		return err
	}
	ctx := tghelpers.BuildContext(c)
	if _, err := h.svc.DeleteItem(ctx, itemID, c.Sender().ID); err != nil {
		return err
	}
	return h.renderList(c, ref, false)
}

func (h *Handlers) renderList(c tele.Context, ref string, forceNew bool) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	view := h.svc.ViewState(ctx, userID)
	if view.LastRef != ref {
		view.LastRef = ref
		if err := h.svc.SaveViewState(ctx, userID, view); err != nil {
			return err
		}
	}

	switch ref {
	case "":
		return h.renderMenu(c, userID, view.ShowBought, forceNew)
	case refAll:
		return h.renderAll(c, userID, view.ShowBought, view.EditMode, forceNew)
	default:
		catID, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			return h.renderMenu(c, userID, view.ShowBought, forceNew)
		}
		return h.renderCategory(c, userID, catID, view.ShowBought, view.EditMode, forceNew)
	}
}

func (h *Handlers) renderMenu(c tele.Context, userID int64, showBought, forceNew bool) error {
	ctx := tghelpers.BuildContext(c)
	cats, err := h.svc.CategoriesWithItems(ctx, userID, showBought)
	if err != nil {
		return err
	}

	showAll := keyboard.InlineBtn{Text: BtnShowAll, Unique: cbListView, Data: refAll}
	var rows [][]keyboard.InlineBtn
	if len(cats) > 6 {
		rows = append(rows, []keyboard.InlineBtn{showAll})
	}
	for _, cat := range cats {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   cat.Name,
			Unique: cbListView,
			Data:   strconv.FormatInt(cat.ID, 10),
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{showAll})

	return h.deliver(c, MsgChooseCategory, keyboard.InlineButtonsRows(rows...), forceNew)
}

func (h *Handlers) renderAll(c tele.Context, userID int64, showBought, editMode, forceNew bool) error {
	ctx := tghelpers.BuildContext(c)
	items, err := h.svc.Items(ctx, userID, showBought)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return h.deliver(c, MsgListEmpty, nil, forceNew)
	}

	grouped := make(map[string][]storage.Item)
	for _, item := range items {
		grouped[item.Department] = append(grouped[item.Department], item)
	}

	text := MsgAllListHeader
	if editMode {
		text += MsgEditModeMarker
	}

	back := []keyboard.InlineBtn{{Text: BtnBackToCats, Unique: cbListCats}}
	mode := []keyboard.InlineBtn{modeButton(editMode, refAll)}
	rows := [][]keyboard.InlineBtn{back, mode}

	cats, err := h.svc.Categories(ctx, userID)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		deptItems, ok := grouped[cat.Name]
		if !ok {
			continue
		}
		text += "\n*" + format.EscapeV1(cat.Name) + "*\n"
		for _, item := range deptItems {
			rows = append(rows, []keyboard.InlineBtn{itemButton(item, refAll, editMode)})
		}
	}

	if len(rows) > maxListRows {
		rows = rows[:maxListRows]
		text += MsgListTooLong
	} else if len(rows) < maxListRows-2 {
		rows = append(rows, mode, back)
	}

	return h.deliver(c, text, keyboard.InlineButtonsRows(rows...), forceNew)
}

func (h *Handlers) renderCategory(c tele.Context, userID, catID int64, showBought, editMode, forceNew bool) error {
	ctx := tghelpers.BuildContext(c)
	cat, err := h.svc.Category(ctx, userID, catID)
	if err != nil {
		return err
	}
	if cat == nil {
		return h.renderMenu(c, userID, showBought, forceNew)
	}

	items, err := h.svc.ItemsInDepartment(ctx, userID, cat.Name, showBought)
	if err != nil {
		return err
	}

	back := []keyboard.InlineBtn{{Text: BtnBackToCats, Unique: cbListCats}}
	if len(items) == 0 {
		text := fmt.Sprintf("В категории *%s* пусто.", format.EscapeV1(cat.Name))
		return h.deliver(c, text, keyboard.InlineButtonsRows(back), forceNew)
	}

	text := fmt.Sprintf("📂 *Категория:* %s\n", format.EscapeV1(cat.Name))
	if editMode {
		text += MsgEditModeMarker
	}

	ref := strconv.FormatInt(catID, 10)
	rows := [][]keyboard.InlineBtn{back}
	for _, item := range items {
		rows = append(rows, []keyboard.InlineBtn{itemButton(item, ref, editMode)})
	}
	rows = append(rows, []keyboard.InlineBtn{modeButton(editMode, ref)}, back)

	return h.deliver(c, text, keyboard.InlineButtonsRows(rows...), forceNew)
}

func itemButton(item storage.Item, ref string, editMode bool) keyboard.InlineBtn {
	data := strconv.FormatInt(item.ID, 10) + "|" + ref
	if editMode {
		return keyboard.InlineBtn{
			Text:   "🗑 Удалить: " + item.Name,
			Unique: cbItemDelete,
			Data:   data,
		}
	}
	status := "⬜️"
	if item.IsBought {
		status = "✅"
	}
	return keyboard.InlineBtn{
		Text:   status + " " + item.Name,
		Unique: cbItemToggle,
		Data:   data,
	}
}

func modeButton(editMode bool, ref string) keyboard.InlineBtn {
	if editMode {
		return keyboard.InlineBtn{Text: BtnEditDone, Unique: cbEditToggle, Data: ref}
	}
	return keyboard.InlineBtn{Text: BtnEditMode, Unique: cbEditToggle, Data: ref}
}

func (h *Handlers) deliver(c tele.Context, text string, markup *tele.ReplyMarkup, forceNew bool) error {
	if forceNew {
		if markup != nil {
			return tghelpers.SendMD(c, text, markup)
		}
		return tghelpers.SendMD(c, text)
	}
	if markup != nil {
		return tghelpers.EditOrSendMD(c, text, markup)
	}
	return tghelpers.EditOrSendMD(c, text)
}
