package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/google"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/linkedin"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/tiktok"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/api"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/scheduler"
	"github.com/vfg2006/adsync-api/internal/usecases/alerting"
	"github.com/vfg2006/adsync-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsync-api/internal/usecases/refreshing"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	integrationRepo := repository.NewAdIntegrationRepository(pgConn)
	jobRepo := repository.NewSyncJobRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	tokenRefresher := refreshing.NewService(cfg, integrationRepo)
	alertService := alerting.NewService(metricRepo)

	googleClient := google.NewClient(cfg.Google)
	metaClient := meta.NewClient(cfg.Meta)
	linkedinClient := linkedin.NewClient(cfg.LinkedIn)
	tiktokClient := tiktok.NewClient(cfg.TikTok)

	syncService := syncing.NewService(
		jobRepo,
		integrationRepo,
		metricRepo,
		tokenRefresher,
		alertService,
		googleClient,
		metaClient,
		linkedinClient,
		tiktokClient,
	)

	// Inicializa o agendador de sincronização automática em background
	autoSyncService := scheduler.NewAutoSyncService(integrationRepo, syncService, cfg)
	if err := autoSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização automática")
	} else {
		logrus.Info("Agendador de sincronização automática iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		syncService,
		integrationRepo,
		authenticator,
		autoSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
