package usecase

import (
	"fmt"

	"github.com/FloodCustomApp/greyrock-listings/internal/constants"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// ValidateRecordsUseCase применяет правила проверки к собранному набору
// записей. Два независимых прохода: предупреждения (нефатальные, всегда
// попадают в метаданные) и ошибки (фатальные, отклоняют весь запуск).
// Запуск валиден тогда и только тогда, когда список ошибок пуст.
type ValidateRecordsUseCase struct {
	recordCeiling int
	priceCeiling  float64
	areaCeiling   float64
}

// NewValidateRecordsUseCase создает валидатор. Пороги настраиваемые:
// они подобраны эмпирически под один источник и не обязаны
// генерализоваться.
func NewValidateRecordsUseCase(recordCeiling int, priceCeiling, areaCeiling float64) *ValidateRecordsUseCase {
	if recordCeiling <= 0 {
		recordCeiling = constants.DefaultRecordCeiling
	}
	if priceCeiling <= 0 {
		priceCeiling = constants.DefaultPriceCeiling
	}
	if areaCeiling <= 0 {
		areaCeiling = constants.DefaultAreaCeiling
	}
	return &ValidateRecordsUseCase{
		recordCeiling: recordCeiling,
		priceCeiling:  priceCeiling,
		areaCeiling:   areaCeiling,
	}
}

// Execute возвращает оба списка; вызывающий решает судьбу запуска по
// списку ошибок.
func (uc *ValidateRecordsUseCase) Execute(records []domain.ListingRecord) ([]domain.ValidationWarning, []domain.ValidationError) {
	warnings := uc.collectWarnings(records)
	errs := uc.collectErrors(records)
	return warnings, errs
}

func (uc *ValidateRecordsUseCase) collectWarnings(records []domain.ListingRecord) []domain.ValidationWarning {
	warnings := make([]domain.ValidationWarning, 0)

	for i := range records {
		r := &records[i]

		if r.Address == nil {
			warnings = append(warnings, domain.ValidationWarning{
				RecordID: r.ID, Rule: "missing-address", Detail: "record has no parsed address",
			})
		}
		if r.Price == nil {
			warnings = append(warnings, domain.ValidationWarning{
				RecordID: r.ID, Rule: "missing-price", Detail: "record has no parsed price",
			})
		}
		if r.Area == nil {
			warnings = append(warnings, domain.ValidationWarning{
				RecordID: r.ID, Rule: "missing-area", Detail: "record has no parsed area",
			})
		}
		if r.PrimaryImage() == "" {
			warnings = append(warnings, domain.ValidationWarning{
				RecordID: r.ID, Rule: "missing-primary-image", Detail: "record has no images",
			})
		}
		if r.Price != nil && *r.Price > uc.priceCeiling {
			warnings = append(warnings, domain.ValidationWarning{
				RecordID: r.ID, Rule: "suspicious-price",
				Detail: fmt.Sprintf("price %.2f exceeds ceiling %.0f", *r.Price, uc.priceCeiling),
			})
		}
		if r.Area != nil && *r.Area > uc.areaCeiling {
			warnings = append(warnings, domain.ValidationWarning{
				RecordID: r.ID, Rule: "suspicious-area",
				Detail: fmt.Sprintf("area %.2f exceeds ceiling %.0f", *r.Area, uc.areaCeiling),
			})
		}
	}

	return warnings
}

func (uc *ValidateRecordsUseCase) collectErrors(records []domain.ListingRecord) []domain.ValidationError {
	var errs []domain.ValidationError

	// Превышение потолка сигнализирует о системной ошибке разбора,
	// плодящей ложные дубликаты, а не о реальном росте инвентаря.
	if len(records) > uc.recordCeiling {
		errs = append(errs, domain.ValidationError{
			Rule:   "record-ceiling-exceeded",
			Detail: fmt.Sprintf("%d records exceed the ceiling of %d", len(records), uc.recordCeiling),
		})
	}

	return errs
}
