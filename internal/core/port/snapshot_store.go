package port

import (
	"context"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// SnapshotStorePort - хранилище снапшотов запусков.
type SnapshotStorePort interface {
	// Latest возвращает снапшот последнего успешного запуска или (nil, nil),
	// если его еще нет. Поврежденный снапшот тоже считается отсутствующим.
	Latest(ctx context.Context) (*domain.RunSnapshot, error)

	// Save долговечно сохраняет снапшот. Вызывается только для прошедших
	// валидацию запусков: отклоненный запуск не должен затирать хорошие данные.
	Save(ctx context.Context, snapshot *domain.RunSnapshot) error
}
