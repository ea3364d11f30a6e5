package domain

import (
	"errors"
	"fmt"
)

// ErrStructureChanged - индексная страница не дала ни ссылок, ни
// распознанной формулировки о пустом инвентаре. Отличается от сетевой
// ошибки: лечится обновлением паттернов извлечения, а не ретраем.
var ErrStructureChanged = errors.New("index page structure changed: no listing links and no empty-inventory phrasing")

// ErrNoRecordsExtracted - ссылки на объекты найдены, но ни одна запись
// не собралась. Частичный успех допустим, полный провал - нет.
var ErrNoRecordsExtracted = errors.New("listing links were found but no records could be extracted")

// ValidationFailedError - запуск отклонен валидатором.
type ValidationFailedError struct {
	Errors []ValidationError
}

func (e *ValidationFailedError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (%s)", e.Errors[0].Rule, e.Errors[0].Detail)
}
