package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

type SnapshotHandler struct {
	store port.SnapshotStorePort
}

func NewSnapshotHandler(store port.SnapshotStorePort) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

// GetSnapshot отдает сводку по последнему валидному снапшоту.
// Отклоненные запуски сюда не попадают: хранилище содержит только
// снапшоты, прошедшие валидацию.
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.store.Latest(r.Context())
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("SnapshotHandler: failed to load snapshot: %v", err))
		return
	}
	if snapshot == nil {
		WriteJSONError(w, http.StatusNotFound, "SnapshotHandler: no snapshot available yet")
		return
	}

	RespondWithJSON(w, http.StatusOK, toSnapshotInfoResponse(snapshot))
}

// GetListings отдает полный список записей последнего снапшота.
func (h *SnapshotHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.store.Latest(r.Context())
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("ListingsHandler: failed to load snapshot: %v", err))
		return
	}
	if snapshot == nil {
		WriteJSONError(w, http.StatusNotFound, "ListingsHandler: no snapshot available yet")
		return
	}

	// Отправить успешный ответ
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(snapshot.Listings); err != nil {
		_ = fmt.Errorf("ListingsHandler: failed to send response: %w", err)
	}
}

// Healthz - проверка живости сервиса.
func (h *SnapshotHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
