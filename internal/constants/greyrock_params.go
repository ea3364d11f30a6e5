package constants

import "regexp"

// Параметры верстки источника. Источник не дает контракта на схему:
// имена классов и формулировки меняются без предупреждения, поэтому все
// маркеры собраны здесь как данные, а не зашиты в логику. Новый вариант
// верстки добавляется новым элементом списка.

// DetailLinkMarker - сегмент URL страницы объекта.
const DetailLinkMarker = "/listings/detail/"

// DetailLinkPattern выделяет идентификатор объекта из ссылки на его страницу.
var DetailLinkPattern = regexp.MustCompile(`/listings/detail/([0-9a-fA-F][0-9a-fA-F-]{7,})`)

// ActionURLSuffix - суффикс ссылки на подачу заявки, строится от DetailURL.
const ActionURLSuffix = "/apply"

// NoInventoryPhrases - формулировки "нет свободных объектов" на индексной
// странице. Нулевой результат с такой формулировкой - валидный успех.
var NoInventoryPhrases = []string{
	"no vacancies",
	"no available properties",
	"no listings available",
	"there are currently no listings",
}

// Маркеры границ карточки объекта.
const (
	ListingItemClass     = "listing-item"
	ListingClassFragment = "listing"
)

// Пороговые значения эвристики подъема по предкам при поиске границ
// карточки: предок принимается, если у него не меньше MinScopeChildren
// прямых детей, не меньше MinScopeLinks ссылок и больше MinScopeTextLen
// символов текста.
const (
	MaxBoundaryHops  = 10
	MinScopeChildren = 3
	MinScopeLinks    = 2
	MinScopeTextLen  = 50
)

// BoilerplateTitlePrefixes - служебные надписи, которые не могут быть
// заголовком объявления.
var BoilerplateTitlePrefixes = []string{
	"View",
	"Apply",
	"Map",
	"Details",
	"Current",
	"Rental",
}

// DescriptionSelectors - известные контейнеры описания, по убыванию доверия.
var DescriptionSelectors = []string{
	".listing-description",
	"[class*='description']",
	".detail-text",
}

// GallerySelectors - известные контейнеры галереи фотографий.
var GallerySelectors = []string{
	".gallery img",
	".photos img",
	"[class*='slide'] img",
	"[class*='carousel'] img",
}

// ImageSourceAttrs - атрибуты, из которых берется URL картинки
// (верстка источника использует ленивую загрузку).
var ImageSourceAttrs = []string{"src", "data-src", "data-original"}

// AssetHostMarker - подстрока хоста, с которого источник раздает фото.
// Запасная стратегия берет любую картинку с этого хоста.
const AssetHostMarker = "images.cdn"

// ExcludedImageMarkers - маркеры логотипов и заглушек в имени файла.
var ExcludedImageMarkers = []string{"logo", "placeholder"}

// CategoryVocabulary - ограниченный словарь типов коммерческой
// недвижимости для сканирования текста карточки.
var CategoryVocabulary = []string{
	"office",
	"retail",
	"industrial",
	"warehouse",
	"mixed-use",
	"medical",
	"flex",
}

// Границы "подозрительных" значений и потолок числа записей.
// Потолок ловит системную ошибку разбора, плодящую дубликаты; число 200
// подобрано эмпирически под этот источник и настраивается через окружение.
const (
	DefaultRecordCeiling = 200
	DefaultPriceCeiling  = 1_000_000
	DefaultAreaCeiling   = 1_000_000
)

// DescriptionMaxLen - предел длины описания в записи.
const DescriptionMaxLen = 300
