package domain

// ProviderID identifica uma das plataformas de anúncios suportadas
type ProviderID string

const (
	ProviderGoogle   ProviderID = "google"
	ProviderFacebook ProviderID = "facebook"
	ProviderLinkedIn ProviderID = "linkedin"
	ProviderTikTok   ProviderID = "tiktok"
)

// AllProviders lista os provedores suportados na ordem de exibição
var AllProviders = []ProviderID{ProviderGoogle, ProviderFacebook, ProviderLinkedIn, ProviderTikTok}

// IsValid verifica se o provedor é um dos suportados
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderFacebook, ProviderLinkedIn, ProviderTikTok:
		return true
	}
	return false
}

// DisplayName retorna o nome da plataforma para mensagens voltadas ao usuário
func (p ProviderID) DisplayName() string {
	switch p {
	case ProviderGoogle:
		return "Google Ads"
	case ProviderFacebook:
		return "Meta Ads"
	case ProviderLinkedIn:
		return "LinkedIn Ads"
	case ProviderTikTok:
		return "TikTok Ads"
	}
	return string(p)
}
