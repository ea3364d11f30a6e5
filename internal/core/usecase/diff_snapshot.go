package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

// DiffSnapshotUseCase сравнивает текущий набор записей с предыдущим
// снапшотом через детерминированный, чувствительный к порядку отпечаток.
type DiffSnapshotUseCase struct{}

func NewDiffSnapshotUseCase() *DiffSnapshotUseCase {
	return &DiffSnapshotUseCase{}
}

// Execute считает отпечаток и флаг изменений. Первый запуск (previous ==
// nil) трактуется как "изменилось", PreviousCount при этом отсутствует.
func (uc *DiffSnapshotUseCase) Execute(previous *domain.RunSnapshot, records []domain.ListingRecord) domain.DiffResult {
	fingerprint := Fingerprint(records)

	if previous == nil {
		return domain.DiffResult{Fingerprint: fingerprint, HasChanges: true}
	}

	previousCount := previous.Meta.TotalCount
	return domain.DiffResult{
		Fingerprint:   fingerprint,
		HasChanges:    fingerprint != previous.Meta.Fingerprint,
		PreviousCount: &previousCount,
	}
}

// Fingerprint - sha256 поверх стабильной сериализации набора записей.
// Детерминирован для идентичного входа и чувствителен к изменению любого
// поля любой записи. Координаты lat/lng исключены: в них подмешан
// косметический джиттер, которому запрещено влиять на сравнение;
// стабильная ячейка geohash при этом учитывается.
func Fingerprint(records []domain.ListingRecord) string {
	h := sha256.New()
	for i := range records {
		h.Write([]byte(recordPayload(&records[i])))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// recordPayload собирает стабильную строку из ключевых полей записи.
func recordPayload(r *domain.ListingRecord) string {
	parts := []string{r.ID, r.Title}

	addString := func(val *string) {
		if val != nil && *val != "" {
			parts = append(parts, strings.ToLower(strings.TrimSpace(*val)))
		} else {
			parts = append(parts, "null")
		}
	}

	addFloat := func(val *float64) {
		if val != nil {
			parts = append(parts, fmt.Sprintf("%f", *val))
		} else {
			parts = append(parts, "null")
		}
	}

	addString(r.Address)
	addString(r.City)
	parts = append(parts, r.Category)
	addString(r.LeaseType)
	addFloat(r.Price)
	addFloat(r.Area)
	addFloat(r.PricePerAreaAnnualized)
	parts = append(parts, r.Description, r.Availability, r.DerivedStatus)
	parts = append(parts, strings.Join(r.Images, ","))
	parts = append(parts, r.DetailURL, r.ActionURL)
	if r.Coordinates != nil {
		parts = append(parts, r.Coordinates.Geohash)
	} else {
		parts = append(parts, "null")
	}

	return strings.Join(parts, "|")
}
