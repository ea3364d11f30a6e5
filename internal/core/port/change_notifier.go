package port

import (
	"context"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// ChangeNotifierPort - уведомление внешних потребителей о том, что набор
// объектов изменился. Отправка best-effort: ошибка логируется и не
// отклоняет запуск.
type ChangeNotifierPort interface {
	NotifyChanges(ctx context.Context, snapshot *domain.RunSnapshot) error
}
