package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/middleware"
)

type UpdateSyncSettingsRequest struct {
	ClientID             *string `json:"clientId,omitempty"`
	AutoSyncEnabled      bool    `json:"autoSyncEnabled"`
	SyncFrequencyMinutes int     `json:"syncFrequencyMinutes"`
	TimeframeDays        int     `json:"timeframeDays"`
}

// ListIntegrations lista as integrações do usuário logado com seus status de
// sincronização
func ListIntegrations(integrationRepo repository.AdIntegrationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		integrations, err := integrationRepo.ListByUser(userClaims.UserID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar integrações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar integrações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(integrations)
	}
}

// UpdateSyncSettings atualiza a configuração de sincronização automática de
// uma integração do usuário logado
func UpdateSyncSettings(integrationRepo repository.AdIntegrationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		providerID := domain.ProviderID(httprouter.ParamsFromContext(r.Context()).ByName("provider"))
		if !providerID.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Provedor inválido. Valores aceitos: google, facebook, linkedin, tiktok", nil)
			return
		}

		var req UpdateSyncSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.AutoSyncEnabled && req.SyncFrequencyMinutes <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
				"Frequência de sincronização é obrigatória quando a sincronização automática está habilitada", nil)
			return
		}

		err := integrationRepo.UpdateSyncSettings(
			userClaims.UserID,
			providerID,
			req.ClientID,
			req.AutoSyncEnabled,
			req.SyncFrequencyMinutes,
			req.TimeframeDays,
		)
		if err != nil {
			logrus.WithError(err).Error("Erro ao atualizar configuração de sincronização")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar configuração de sincronização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":  "Configuração de sincronização atualizada com sucesso",
			"provider": providerID,
		})
	}
}
