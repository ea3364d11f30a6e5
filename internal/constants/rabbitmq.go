package constants

// Обменник и ключ маршрутизации для событий об изменении набора объектов.
const (
	NotifyExchange       = "listings_exchange"
	RoutingKeySetChanged = "greyrock.listings.changed"
)
