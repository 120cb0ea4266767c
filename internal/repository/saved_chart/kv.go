package savedChartRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/cache"
	ports "github.com/admin/kundali-service/internal/ports/repository"
	"github.com/google/uuid"
)

const keyPrefix = "kundali:saved:"

// record формат элемента массива в KV, в отличие от API хранит время создания
type record struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Location  string    `json:"location"`
	Lat       *float64  `json:"lat,omitempty"`
	Lon       *float64  `json:"lon,omitempty"`
	Tzone     *float64  `json:"tzone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// KVRepository все карты владельца одним JSON-массивом под одним ключом, перезаписывается целиком
type KVRepository struct {
	store cache.Cache
	Log   *slog.Logger

	// read-modify-write в пределах процесса
	mu sync.Mutex
}

// NewKV создаёт репозиторий поверх KV-хранилища (Redis или in-memory)
func NewKV(store cache.Cache, log *slog.Logger) ports.ISavedChartRepo {
	return &KVRepository{
		store: store,
		Log:   log,
	}
}

func ownerKey(ownerID string) string {
	return keyPrefix + ownerID
}

func (r *KVRepository) load(ctx context.Context, ownerID string) ([]record, error) {
	raw, err := r.store.Get(ctx, ownerKey(ownerID))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved charts: %w", err)
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.Log.Error("corrupted saved charts record",
			"error", err,
			"owner_id", ownerID,
		)
		return nil, fmt.Errorf("failed to decode saved charts: %w", err)
	}
	return records, nil
}

func (r *KVRepository) save(ctx context.Context, ownerID string, records []record) error {
	if len(records) == 0 {
		return r.store.Delete(ctx, ownerKey(ownerID))
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode saved charts: %w", err)
	}
	if err := r.store.Set(ctx, ownerKey(ownerID), string(payload), 0); err != nil {
		return fmt.Errorf("failed to write saved charts: %w", err)
	}
	return nil
}

func (r *KVRepository) List(ctx context.Context, ownerID string) ([]*domain.SavedChart, error) {
	records, err := r.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	charts := make([]*domain.SavedChart, 0, len(records))
	for _, rec := range records {
		charts = append(charts, rec.toDomain(ownerID))
	}
	return charts, nil
}

func (r *KVRepository) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.SavedChart, error) {
	records, err := r.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain(ownerID), nil
		}
	}
	return nil, domain.ErrSavedChartNotFound
}

// Add повторное сохранение с тем же id заменяет запись
func (r *KVRepository) Add(ctx context.Context, chart *domain.SavedChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx, chart.OwnerID)
	if err != nil {
		return err
	}

	next := make([]record, 0, len(records)+1)
	for _, rec := range records {
		if rec.ID != chart.ID {
			next = append(next, rec)
		}
	}
	next = append(next, fromDomain(chart))

	if err := r.save(ctx, chart.OwnerID, next); err != nil {
		return err
	}

	r.Log.Debug("saved chart stored",
		"owner_id", chart.OwnerID,
		"saved_chart_id", chart.ID,
		"total", len(next),
	)
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx, ownerID)
	if err != nil {
		return err
	}

	next := make([]record, 0, len(records))
	for _, rec := range records {
		if rec.ID != id {
			next = append(next, rec)
		}
	}
	if len(next) == len(records) {
		return domain.ErrSavedChartNotFound
	}

	return r.save(ctx, ownerID, next)
}

func fromDomain(c *domain.SavedChart) record {
	return record{
		ID:        c.ID,
		Name:      c.Name,
		Date:      c.Date,
		Time:      c.Time,
		Location:  c.Location,
		Lat:       c.Lat,
		Lon:       c.Lon,
		Tzone:     c.Tzone,
		CreatedAt: c.CreatedAt,
	}
}

func (rec record) toDomain(ownerID string) *domain.SavedChart {
	return &domain.SavedChart{
		ID:        rec.ID,
		OwnerID:   ownerID,
		Name:      rec.Name,
		Date:      rec.Date,
		Time:      rec.Time,
		Location:  rec.Location,
		Lat:       rec.Lat,
		Lon:       rec.Lon,
		Tzone:     rec.Tzone,
		CreatedAt: rec.CreatedAt,
	}
}
