package shoplist

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ksokolovskiy/ks-buy-bot/core/bootstrap"
	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
	"log/slog"

	"github.com/ksokolovskiy/ks-buy-bot/app/storage"
)

// SeedCategory bundles a department name with its starter items.
type SeedCategory struct {
	Name  string
	Items []string
}

// DefaultCatalog is the starter shopping catalog every new user receives.
var DefaultCatalog = []SeedCategory{
	{
		Name: "🧹 Быт и уборка",
		Items: []string{
			"Пакеты для мусора", "Жидкость для посудомойки", "Таблетки для посудомойки",
			"Хлорка", "Максима для стирки", "Батарейки",
		},
	},
	{
		Name: "🧴 Гигиена и уход",
		Items: []string{
			"Мыло для рук", "Зубная паста", "Влажные салфетки", "Ёршики для унитаза",
			"Репеллент", "Прокладки", "Шампунь", "Зубные щётки", "Дезодорант",
			"Жидкое мыло", "Туалетная бумага", "Бумажные полотенца", "Детская нить для зубов",
		},
	},
	{
		Name: "🍳 Дом и кухня",
		Items: []string{
			"Прихватки", "Сидушка для унитаза", "Контейнеры для хранения", "Фольга",
			"Дуршлаг", "Силикон формы для запекания", "Бутылка для воды",
		},
	},
	{
		Name: "🥦 Овощи и зелень",
		Items: []string{
			"Помидоры", "Картошка", "Болгарский перец", "Огурцы свежие", "Морковь",
			"Лук", "Кукуруза", "Батат", "Чеснок", "Баклажан", "Свекла", "Брокколи",
			"Руккола", "Авокадо", "Кабачки", "Тыква", "Капуста", "Шампиньоны",
		},
	},
	{
		Name: "🍎 Фрукты и ягоды",
		Items: []string{
			"Бананы", "Яблоки", "Арбуз", "Груша", "Нектарины", "Дыня", "Виноград",
			"Чернослив", "Ягоды / заморозка", "Хурма", "Апельсин",
		},
	},
	{
		Name: "🥩 Мясо, рыба и птица",
		Items: []string{
			"Мясо", "Курица", "Рыба", "Ветчина", "Колбаса", "Печень", "Индейка",
			"Фарш говяжий", "Сосиски",
		},
	},
	{
		Name: "🥛 Молочные продукты и яйца",
		Items: []string{
			"Яйца", "Молоко", "Сливочное масло", "Йогурт", "Сыр", "Сыр фета",
			"Творог", "Кефир", "Моцарелла", "Сливки",
		},
	},
	{
		Name: "🍝 Бакалея",
		Items: []string{
			"Паста", "Гречка", "Манка", "Соль", "Мука", "Овсянка", "Лимонный сок",
			"Оливковое масло", "Рис", "Киноа", "Булгур", "Бурый рис", "Пшено",
			"Хумус", "Паста для пиццы", "Чечевица", "Хлеб",
		},
	},
	{
		Name: "🥫 Консервы и готовые продукты",
		Items: []string{
			"Соленые огурцы", "Консервированная кукуруза", "Мак (сушеный)",
			"Консерв белая фасоль", "Корица молотая", "Сардины в банке", "Оливки",
		},
	},
	{
		Name: "🍬 Сладости и снеки",
		Items: []string{
			"Бамба", "Маршмэллоу", "Сахар", "Темный шоколад", "Курага",
			"Тыквенные семечки", "К чаю", "Ванильный сахар",
		},
	},
	{
		Name: "🍷 Напитки и алкоголь",
		Items: []string{
			"Вода", "Вино", "Сок", "Лёд", "Пиво", "Коньяк", "Кофе", "Чай", "Какао",
		},
	},
	{
		Name:  "🍼 Детские товары",
		Items: []string{"Пюре", "Памперсы", "Памперсы трусики"},
	},
}

// EnsureCatalog seeds the default catalog for one user. Categories are
// inserted idempotently; items are only seeded while the user has none,
// so cleared lists stay cleared.
func (s *Service) EnsureCatalog(ctx context.Context, userID int64) error {
	for _, cat := range DefaultCatalog {
		if err := s.categories.Ensure(ctx, userID, cat.Name); err != nil {
			return err
		}
	}

	count, err := s.items.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeded := 0
	for _, cat := range DefaultCatalog {
		for _, name := range cat.Items {
			if _, err := s.items.Add(ctx, userID, name, cat.Name); err != nil {
				return err
			}
			seeded++
		}
	}

	logger.SEED.Info("catalog seeded",
		slog.String("event", "seed.catalog"),
		slog.Int64("user_id", userID),
		slog.Int("categories", len(DefaultCatalog)),
		slog.Int("items", seeded),
	)
	return nil
}

// CatalogSeeder pre-seeds the catalog for every allowlisted user at startup,
// so the bot serves a ready list before the first /start.
func CatalogSeeder(userIDs []int64) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
		svc := NewService(
			storage.NewCategoryStore(db),
			storage.NewItemStore(db),
			storage.NewRecordStore(db),
		)
		for _, id := range userIDs {
			if err := svc.EnsureCatalog(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}
