package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/kundali-service/internal/adapters/primary/http"
	healthcheckController "github.com/admin/kundali-service/internal/adapters/primary/http/controllers/healthcheck"
	kundaliController "github.com/admin/kundali-service/internal/adapters/primary/http/controllers/kundali"
	alerterAdapter "github.com/admin/kundali-service/internal/adapters/secondary/alerter"
	astroApiAdapter "github.com/admin/kundali-service/internal/adapters/secondary/astroApi"
	"github.com/admin/kundali-service/internal/adapters/secondary/gemini"
	kafkaAdapter "github.com/admin/kundali-service/internal/adapters/secondary/kafka"
	"github.com/admin/kundali-service/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/kundali-service/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/kundali-service/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/kundali-service/internal/adapters/secondary/storage/s3"
	"github.com/admin/kundali-service/internal/ports/cache"
	"github.com/admin/kundali-service/internal/ports/repository"
	"github.com/admin/kundali-service/internal/ports/service"
	"github.com/admin/kundali-service/internal/ports/storage"
	savedChartRepo "github.com/admin/kundali-service/internal/repository/saved_chart"
	alerterService "github.com/admin/kundali-service/internal/services/alerter"
	astroApiService "github.com/admin/kundali-service/internal/services/astroApi"
	jobScheduler "github.com/admin/kundali-service/internal/services/jobs"
	narrativeService "github.com/admin/kundali-service/internal/services/narrative"
	kundaliUsecase "github.com/admin/kundali-service/internal/usecases/kundali"
)

type Dependencies struct {
	DB            *pg.DB // nil без POSTGRES_HOST
	HTTPServer    *http.Server
	Cache         cache.Cache
	EventProducer *kafkaAdapter.Producer // nil без KAFKA_BROKERS
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	cacheClient := a.initCache()
	savedRepo := a.initSavedChartRepo(db, cacheClient)

	externalServices, err := a.initExternalServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init external services: %w", err)
	}

	producer := a.initKafka()

	kundaliUseCase := kundaliUsecase.New(
		externalServices.AstroAPI,
		externalServices.Narrative,
		savedRepo,
		inmemory.NewRequestCache(),
		cacheClient,
		a.Log,
	)
	kundaliUseCase.Cache = cacheClient
	kundaliUseCase.S3Client = externalServices.S3
	if producer != nil {
		kundaliUseCase.EventProducer = producer
	}

	httpServer := a.initHTTP(db, cacheClient, kundaliUseCase)
	scheduler := a.initJobScheduler(externalServices.Alerter, kundaliUseCase)

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		Cache:         cacheClient,
		EventProducer: producer,
		JobScheduler:  scheduler,
	}, nil
}

// initPostgres подключение и миграции; без конфига сохранённые карты живут в KV
func (a *App) initPostgres(ctx context.Context) (*pg.DB, error) {
	if !a.Cfg.Postgres.IsConfigured() {
		a.Log.Info("postgres is not configured, saved charts use key-value storage")
		return nil, nil
	}

	db, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return pg.NewDB(db), nil
}

// initCache Redis если доступен, иначе in-memory
func (a *App) initCache() cache.Cache {
	if a.Cfg.Redis.IsConfigured() {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err == nil {
			a.Log.Info("redis cache connected successfully")
			return redisAdapter.NewClient(redisClient)
		}
		a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
	}

	a.Log.Warn("using in-memory cache, data is lost on restart")
	return inmemory.NewCache()
}

func (a *App) initSavedChartRepo(db *pg.DB, cacheClient cache.Cache) repository.ISavedChartRepo {
	if db != nil {
		return savedChartRepo.NewPg(db, a.Log)
	}
	return savedChartRepo.NewKV(cacheClient, a.Log)
}

// externalServices содержит внешние сервисы
type externalServices struct {
	AstroAPI  service.IAstroAPIService
	Narrative service.INarrativeService
	Alerter   service.IAlerterService
	S3        storage.IS3Client // nil без S3_HOST
}

// initExternalServices инициализирует внешние сервисы (AstroAPI, Gemini, Alerter, S3)
func (a *App) initExternalServices(ctx context.Context) (*externalServices, error) {
	services := &externalServices{}

	astroAPIClient := astroApiAdapter.NewClient(a.Cfg.AstroAPI, a.Log)
	services.AstroAPI = astroApiService.New(astroAPIClient)

	geminiClient, err := gemini.NewClient(ctx, a.Cfg.Gemini, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini client: %w", err)
	}
	services.Narrative = narrativeService.New(geminiClient, a.Log)

	// Alerter - опциональный, без токена алерты только в лог
	alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
	services.Alerter = alerterService.New(alerterClient, a.Name, a.Log)

	// S3 - опциональный
	if a.Cfg.S3.IsConfigured() {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 storage, chart images stay inline", "error", err)
		} else {
			services.S3 = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 storage connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	return services, nil
}

// initKafka producer событий; ошибка подключения не фатальна
func (a *App) initKafka() *kafkaAdapter.Producer {
	if !a.Cfg.Kafka.IsConfigured() {
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, events are disabled", "error", err)
		return nil
	}

	return producer
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(db *pg.DB, cacheClient cache.Cache, kundali *kundaliUsecase.Service) *http.Server {
	deps := map[string]healthcheckController.Pinger{
		"cache": cacheClient,
	}
	if db != nil {
		deps["postgres"] = db
	}

	controllers := []server.Controller{
		healthcheckController.New(deps, a.Log),
		kundaliController.New(kundali, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(alerterSvc service.IAlerterService, kundali *kundaliUsecase.Service) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	scheduler.Register(jobScheduler.NewTransitUpdater(kundali))
	a.Log.Info("transit updater job registered")

	return scheduler
}
