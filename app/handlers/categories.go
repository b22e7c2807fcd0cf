package handlers

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/ksokolovskiy/ks-buy-bot/core/telegram/helpers"
)

// AddCategory implements /add_cat <name>.
func (h *Handlers) AddCategory(c tele.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return tghelpers.SendText(c, MsgAddCatUsage)
	}

	ctx := tghelpers.BuildContext(c)
	created, err := h.svc.AddCategory(ctx, c.Sender().ID, name)
	if err != nil {
		return err
	}
	if !created {
		return tghelpers.SendText(c, MsgCategoryExists)
	}
	return tghelpers.SendText(c, fmt.Sprintf("✅ Категория '%s' добавлена.", name))
}

// DeleteCategory implements /del_cat <name>. Items keep their department
// text and stay reachable through the whole-list view.
func (h *Handlers) DeleteCategory(c tele.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return tghelpers.SendText(c, MsgDelCatUsage)
	}

	ctx := tghelpers.BuildContext(c)
	deleted, err := h.svc.DeleteCategory(ctx, c.Sender().ID, name)
	if err != nil {
		return err
	}
	if !deleted {
		return tghelpers.SendText(c, MsgCategoryNotFound)
	}
	return tghelpers.SendText(c, fmt.Sprintf("✅ Категория '%s' удалена.", name))
}
