package domain

// Нормализованные значения доступности. Конкретная дата въезда
// передается как есть (строка вида "06/01/2025" или "June 2025").
const (
	AvailabilityNow     = "available-now"
	AvailabilityContact = "contact-for-details"
)

// Статус, производный от доступности.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
)

// CategoryDefault - категория по умолчанию, если тип объекта не распознан.
const CategoryDefault = "Commercial"

// Coordinates - координаты для отображения на карте.
// Geohash считается от базовой координаты города (до джиттера),
// поэтому стабилен между запусками.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Geohash   string  `json:"geohash,omitempty"`
}

// ListingRecord - одна обнаруженная единица коммерческой недвижимости.
// Запись собирается один раз за запуск и после сборки не изменяется,
// кроме шага обогащения координатами.
type ListingRecord struct {
	ID                     string       `json:"id"`
	Title                  string       `json:"title"`
	Address                *string      `json:"address,omitempty"`
	City                   *string      `json:"city,omitempty"`
	Category               string       `json:"category"`
	LeaseType              *string      `json:"leaseType,omitempty"`
	Price                  *float64     `json:"price,omitempty"`
	Area                   *float64     `json:"area,omitempty"`
	PricePerAreaAnnualized *float64     `json:"pricePerAreaAnnualized,omitempty"`
	Description            string       `json:"description"`
	Availability           string       `json:"availability"`
	DerivedStatus          string       `json:"derivedStatus"`
	Images                 []string     `json:"images"`
	DetailURL              string       `json:"detailUrl"`
	ActionURL              string       `json:"actionUrl"`
	Coordinates            *Coordinates `json:"coordinates,omitempty"`
}

// DeriveStatus - чистая функция: статус всегда выводится из доступности
// и никогда не выставляется независимо.
func DeriveStatus(availability string) string {
	if availability == AvailabilityNow {
		return StatusAvailable
	}
	return StatusPending
}

// PrimaryImage возвращает главное фото (первое в списке) или пустую строку.
func (r *ListingRecord) PrimaryImage() string {
	if len(r.Images) == 0 {
		return ""
	}
	return r.Images[0]
}

// IndexOutcome - терминальное состояние разбора страницы со списком объектов.
type IndexOutcome string

const (
	// IndexOutcomeListings - найдено не менее одной ссылки на объект.
	IndexOutcomeListings IndexOutcome = "listings"
	// IndexOutcomeNoInventory - на странице явная формулировка "нет вакансий".
	// Это валидный пустой результат, а не ошибка.
	IndexOutcomeNoInventory IndexOutcome = "no-inventory"
	// IndexOutcomeStructureChanged - ни ссылок, ни формулировки о пустом
	// инвентаре: верстка источника изменилась.
	IndexOutcomeStructureChanged IndexOutcome = "structure-changed"
)

// ListingRef - идентификатор объекта и ссылка на его страницу.
type ListingRef struct {
	ID        string
	DetailURL string
}

// IndexResult - результат разбора индексной страницы.
// Refs дедуплицированы по идентификатору с сохранением порядка первого
// появления. Records заполняется в режиме разбора карточек; если для
// якоря не удалось найти границы карточки, записи для него здесь нет.
type IndexResult struct {
	Outcome IndexOutcome
	Refs    []ListingRef
	Records []ListingRecord
}
