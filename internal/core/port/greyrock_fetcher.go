package port

import (
	"context"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// GreyrockFetcherPort объединяет все операции с сайтом-источником.
// Любая сетевая ошибка возвращается после исчерпания внутренних ретраев
// и для пайплайна непрозрачна и фатальна.
type GreyrockFetcherPort interface {
	// FetchIndex загружает и разбирает индексную страницу со списком
	// объектов. Записи в IndexResult.Records собраны из карточек.
	FetchIndex(ctx context.Context) (*domain.IndexResult, error)

	// FetchListingDetails загружает отдельную страницу объекта и собирает
	// полную запись. Между вызовами выдерживается обязательная задержка.
	FetchListingDetails(ctx context.Context, ref domain.ListingRef) (*domain.ListingRecord, error)
}
