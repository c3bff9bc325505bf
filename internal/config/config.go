package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Google   Google   `mapstructure:",squash"`
	Meta     Meta     `mapstructure:",squash"`
	LinkedIn LinkedIn `mapstructure:",squash"`
	TikTok   TikTok   `mapstructure:",squash"`
	AutoSync AutoSync `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Google guarda as credenciais de aplicativo OAuth do Google Ads.
// O developer token e o customer id são por integração, não por aplicativo.
type Google struct {
	BaseURL      string `mapstructure:"google_ads_base_url"`
	Version      string `mapstructure:"google_ads_version"`
	OAuthURL     string `mapstructure:"google_oauth_url"`
	ClientID     string `mapstructure:"google_client_id"`
	ClientSecret string `mapstructure:"google_client_secret"`
}

type Meta struct {
	BaseURL   string `mapstructure:"meta_base_url"`
	Version   string `mapstructure:"meta_version"`
	URL       string `mapstructure:"-"`
	AppID     string `mapstructure:"meta_app_id"`
	AppSecret string `mapstructure:"meta_app_secret"`
	// Limite de páginas por busca de insights (cursor "after")
	InsightsPageLimit int `mapstructure:"meta_insights_page_limit"`
}

type LinkedIn struct {
	BaseURL      string `mapstructure:"linkedin_base_url"`
	OAuthURL     string `mapstructure:"linkedin_oauth_url"`
	ClientID     string `mapstructure:"linkedin_client_id"`
	ClientSecret string `mapstructure:"linkedin_client_secret"`
}

type TikTok struct {
	BaseURL   string `mapstructure:"tiktok_base_url"`
	AppID     string `mapstructure:"tiktok_app_id"`
	AppSecret string `mapstructure:"tiktok_app_secret"`
}

// AutoSync configura o agendador que enfileira jobs para integrações com
// sincronização automática habilitada
type AutoSync struct {
	CronSchedule   string `mapstructure:"auto_sync_cron"`
	Enabled        bool   `mapstructure:"auto_sync_enabled"`
	MaxJobsPerTick int    `mapstructure:"auto_sync_max_jobs_per_tick"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_OAUTH_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_INSIGHTS_PAGE_LIMIT", 10)

	viper.SetDefault("LINKEDIN_BASE_URL", "https://api.linkedin.com")
	viper.SetDefault("LINKEDIN_OAUTH_URL", "https://www.linkedin.com/oauth/v2/accessToken")
	viper.SetDefault("LINKEDIN_CLIENT_ID", "")
	viper.SetDefault("LINKEDIN_CLIENT_SECRET", "")

	viper.SetDefault("TIKTOK_BASE_URL", "https://business-api.tiktok.com")
	viper.SetDefault("TIKTOK_APP_ID", "")
	viper.SetDefault("TIKTOK_APP_SECRET", "")

	// Defaults da sincronização automática
	viper.SetDefault("AUTO_SYNC_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("AUTO_SYNC_ENABLED", false)
	viper.SetDefault("AUTO_SYNC_MAX_JOBS_PER_TICK", 20)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
