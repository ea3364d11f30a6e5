package port

import "github.com/FloodCustomApp/greyrock-listings/internal/core/domain"

// GeocoderPort - чистый справочник город -> координаты.
// Возвращаемые координаты уже содержат небольшой джиттер, чтобы объекты
// одного города не сливались в одну точку на карте; geohash при этом
// считается от базовой координаты и стабилен.
type GeocoderPort interface {
	Locate(city string) domain.Coordinates
}
