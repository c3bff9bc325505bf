package integrator

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/adsync-api/internal/domain"
)

// ConfigError indica uma integração mal configurada (identificador de conta
// ausente). É um erro de configuração, não transiente: o chamador não deve
// aplicar retry e a mensagem orienta o usuário a reconectar a integração.
type ConfigError struct {
	Provider domain.ProviderID
	Field    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"integração %s sem %s configurado. Reconecte sua integração %s",
		e.Provider, e.Field, e.Provider.DisplayName(),
	)
}

// NewMissingFieldError cria o erro de campo obrigatório ausente
func NewMissingFieldError(provider domain.ProviderID, field string) *ConfigError {
	return &ConfigError{Provider: provider, Field: field}
}

// IsConfigError verifica se o erro (em qualquer nível da cadeia) é de configuração
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
