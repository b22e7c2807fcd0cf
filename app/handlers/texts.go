package handlers

// Reply keyboard button labels. The text router matches them verbatim,
// so they must stay in sync with the keyboard sent at /start.
const (
	BtnAddItem      = "➕ Добавить"
	BtnShowList     = "📋 Список"
	BtnToggleBought = "👁 Показать/Скрыть"
	BtnCancel       = "❌ Отмена"
	BtnShowAll      = "📝 Показать всё"
	BtnBackToCats   = "⬅️ Назад к категориям"
	BtnEditMode     = "⚙️ Удаление"
	BtnEditDone     = "✅ Готово"
)

const MsgWelcome = `Привет! 👋

Это бот для управления списком покупок.

Используй кнопки ниже для управления списком:
• Добавить товар
• Показать список покупок
• Показать/скрыть купленные товары
• Удалить все купленные товары`

const (
	MsgAccessDenied      = "⛔️ У вас нет доступа к этому боту."
	MsgChooseDepartment  = "Выберите отдел для товара:"
	MsgEnterItemName     = "Введите название товара:"
	MsgItemAdded         = "✅ Товар добавлен в список!"
	MsgListEmpty         = "📭 Список покупок пуст."
	MsgBoughtCleared     = "🗑 Все купленные товары удалены."
	MsgNoBoughtItems     = "Нет купленных товаров для удаления."
	MsgCancelled         = "Отменено."
	MsgChooseCategory    = "🗏 *Выберите категорию:*"
	MsgCategoryExists    = "❌ Категория уже существует."
	MsgAddCatUsage       = "Использование: /add_cat Название категории"
	MsgDelCatUsage       = "Использование: /del_cat Название категории"
	MsgCategoryNotFound  = "❌ Такой категории нет."
	MsgTestOK            = "Бот работает и видит ваши сообщения! ✅"
	MsgListTooLong       = "\n\n⚠️ _Список слишком длинный, показаны первые товары._"
	MsgEditModeMarker    = "⚠️ _Режим удаления_\n"
	MsgAllListHeader     = "📋 *Весь список:*\n"
	MsgUnsupportedAction = "Неизвестное действие"
)
