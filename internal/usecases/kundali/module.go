package kundali

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/admin/kundali-service/internal/ports/cache"
	"github.com/admin/kundali-service/internal/ports/kafka"
	"github.com/admin/kundali-service/internal/ports/repository"
	"github.com/admin/kundali-service/internal/ports/service"
	"github.com/admin/kundali-service/internal/ports/storage"
	"github.com/google/uuid"
)

// Service бизнес-логика построения карт
type Service struct {
	AstroAPIService  service.IAstroAPIService
	NarrativeService service.INarrativeService
	SavedChartRepo   repository.ISavedChartRepo
	RequestCache     cache.IRequestCache
	// SessionStore снимки ViewState по сессиям, живут sessionTTL
	SessionStore cache.Cache
	Log          *slog.Logger

	// опциональные зависимости, nil если не сконфигурированы
	Cache         cache.Cache
	S3Client      storage.IS3Client
	EventProducer kafka.IEventProducer

	now func() time.Time

	// mu защищает runs и read-modify-write снимков сессий
	mu sync.Mutex
	// runs только активные прогоны, запись удаляется по завершении
	runs map[string]*run
}

// run отмена активного прогона сессии
type run struct {
	token  uuid.UUID
	cancel context.CancelFunc
}

// New создаёт новый сервис построения карт
func New(
	astroAPIService service.IAstroAPIService,
	narrativeService service.INarrativeService,
	savedChartRepo repository.ISavedChartRepo,
	requestCache cache.IRequestCache,
	sessionStore cache.Cache,
	log *slog.Logger,
) *Service {
	return &Service{
		AstroAPIService:  astroAPIService,
		NarrativeService: narrativeService,
		SavedChartRepo:   savedChartRepo,
		RequestCache:     requestCache,
		SessionStore:     sessionStore,
		Log:              log,
		now:              time.Now,
		runs:             make(map[string]*run),
	}
}
