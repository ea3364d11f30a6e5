package usecases_port

import (
	"context"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// RunPipelinePort - единственная операция, которую ядро открывает наружу.
// При отклонении запуска ошибка различима через errors.Is/As:
// domain.ErrStructureChanged, *domain.ValidationFailedError либо
// непрозрачная сетевая ошибка.
type RunPipelinePort interface {
	Execute(ctx context.Context) (*domain.RunSnapshot, error)
}
