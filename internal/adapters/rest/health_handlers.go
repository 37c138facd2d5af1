package rest

import (
	"net/http"
	usecases_port "tool-catalog-service/internal/core/port/usecases_port"
)

type HealthHandler struct {
	getStoreStatusUC usecases_port.GetStoreStatusUseCase
}

func NewHealthHandler(getStoreStatusUC usecases_port.GetStoreStatusUseCase) *HealthHandler {
	return &HealthHandler{getStoreStatusUC: getStoreStatusUC}
}

// GetHealth отдает живое состояние хранилища: 200 если оно отвечает, иначе 503
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.getStoreStatusUC.Execute(r.Context())

	code := http.StatusOK
	if !status.Connected {
		code = http.StatusServiceUnavailable
	}
	RespondWithJSON(w, code, StoreStatusResponse{
		Driver:    status.Driver,
		Connected: status.Connected,
		Host:      status.Host,
		Database:  status.Database,
		Error:     status.Error,
	})
}
