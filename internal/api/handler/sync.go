package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/refreshing"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/middleware"
)

type EnqueueSyncJobRequest struct {
	ProviderID    string  `json:"providerId"`
	ClientID      *string `json:"clientId,omitempty"`
	TimeframeDays int     `json:"timeframeDays,omitempty"`
}

// EnqueueSyncJob enfileira um job de sincronização para o usuário logado
func EnqueueSyncJob(service syncing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req EnqueueSyncJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		providerID := domain.ProviderID(req.ProviderID)
		if !providerID.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Provedor inválido. Valores aceitos: google, facebook, linkedin, tiktok", nil)
			return
		}

		job, err := service.EnqueueJob(userClaims.UserID, providerID, req.ClientID, req.TimeframeDays)
		if err != nil {
			logrus.WithError(err).Error("Erro ao enfileirar job de sincronização")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enfileirar job de sincronização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(job)
	}
}

// RunSyncJob processa o próximo job da fila do usuário logado
func RunSyncJob(service syncing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		result, err := service.ProcessNextJob(r.Context(), userClaims.UserID)
		if err != nil {
			handleSyncError(w, err)
			return
		}

		if result == nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"message": "Nenhum job na fila",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// handleSyncError traduz falhas de sincronização para a resposta HTTP.
// O job já foi marcado como falho pelo orquestrador neste ponto.
func handleSyncError(w http.ResponseWriter, err error) {
	var tokenErr *refreshing.IntegrationTokenError
	if errors.As(err, &tokenErr) {
		apiErrors.WriteError(w, apiErrors.ErrExpiredToken, tokenErr.Message, map[string]any{
			"provider": tokenErr.ProviderID,
		})
		return
	}

	logrus.WithError(err).Error("Erro ao processar job de sincronização")
	apiErrors.WriteError(w, apiErrors.ErrProviderSync, "Erro ao sincronizar métricas", nil)
}
