package geocoder

import (
	"math/rand/v2"
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

const geohashPrecision = 5

// jitterMagnitude - максимальное смещение по каждой оси в градусах.
// Джиттер чисто косметический (разводит пины одного города на карте)
// и не участвует ни в каком сравнении или определении идентичности.
const jitterMagnitude = 0.008

type coordinate struct {
	lat float64
	lng float64
}

// cityTable - офлайн-справочник известных городов источника.
// Ключи в нижнем регистре без лишних пробелов.
var cityTable = map[string]coordinate{
	"stamford":   {41.0534, -73.5387},
	"norwalk":    {41.1177, -73.4082},
	"greenwich":  {41.0262, -73.6282},
	"darien":     {41.0787, -73.4690},
	"new canaan": {41.1468, -73.4954},
	"westport":   {41.1415, -73.3579},
	"fairfield":  {41.1408, -73.2613},
	"bridgeport": {41.1865, -73.1952},
	"stratford":  {41.1845, -73.1332},
}

// defaultCoordinate используется для нераспознанных и пустых городов.
var defaultCoordinate = coordinate{41.0534, -73.5387}

// StaticTableGeocoder - чистый справочник город -> координаты.
type StaticTableGeocoder struct{}

func NewStaticTableGeocoder() *StaticTableGeocoder {
	return &StaticTableGeocoder{}
}

// Locate возвращает координаты города с небольшим случайным смещением по
// каждой оси. Geohash считается от базовой (несмещенной) координаты и
// потому стабилен между запусками.
func (g *StaticTableGeocoder) Locate(city string) domain.Coordinates {
	base := defaultCoordinate
	if c, ok := cityTable[strings.ToLower(strings.TrimSpace(city))]; ok {
		base = c
	}

	return domain.Coordinates{
		Latitude:  base.lat + jitter(),
		Longitude: base.lng + jitter(),
		Geohash:   geohash.EncodeWithPrecision(base.lat, base.lng, geohashPrecision),
	}
}

func jitter() float64 {
	return (rand.Float64()*2 - 1) * jitterMagnitude
}
