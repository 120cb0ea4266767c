package savedChartRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/persistence"
	ports "github.com/admin/kundali-service/internal/ports/repository"
	"github.com/google/uuid"
)

type savedChartColumns struct {
	TableName string
	ID        string
	OwnerID   string
	Name      string
	Date      string
	Time      string
	Location  string
	Lat       string
	Lon       string
	Tzone     string
	CreatedAt string
}

// PgRepository сохранённые карты в таблице saved_charts
type PgRepository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns savedChartColumns
}

// NewPg создаёт новый репозиторий сохранённых карт в Postgres
func NewPg(db persistence.Persistence, log *slog.Logger) ports.ISavedChartRepo {
	cols := savedChartColumns{
		TableName: "saved_charts",
		ID:        "id",
		OwnerID:   "owner_id",
		Name:      "name",
		Date:      "birth_date",
		Time:      "birth_time",
		Location:  "location",
		Lat:       "lat",
		Lon:       "lon",
		Tzone:     "tzone",
		CreatedAt: "created_at",
	}
	return &PgRepository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *PgRepository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.OwnerID,
		r.columns.Name,
		r.columns.Date,
		r.columns.Time,
		r.columns.Location,
		r.columns.Lat,
		r.columns.Lon,
		r.columns.Tzone,
		r.columns.CreatedAt)
}

func (r *PgRepository) List(ctx context.Context, ownerID string) ([]*domain.SavedChart, error) {
	var charts []*domain.SavedChart
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.OwnerID,
		r.columns.CreatedAt,
		r.columns.ID)
	if err := r.db.Select(ctx, &charts, query, ownerID); err != nil {
		r.Log.Error("failed to list saved charts",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to list saved charts: %w", err)
	}
	if charts == nil {
		charts = []*domain.SavedChart{}
	}
	return charts, nil
}

func (r *PgRepository) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.SavedChart, error) {
	var chart domain.SavedChart
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID,
		r.columns.OwnerID)
	err := r.db.Get(ctx, &chart, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSavedChartNotFound
		}
		r.Log.Error("failed to get saved chart",
			"error", err,
			"saved_chart_id", id)
		return nil, fmt.Errorf("failed to get saved chart: %w", err)
	}
	return &chart, nil
}

// Add upsert по id, в рамках того же владельца
func (r *PgRepository) Add(ctx context.Context, chart *domain.SavedChart) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		WHERE %s.%s = EXCLUDED.%s`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.ID,
		r.columns.Name, r.columns.Name,
		r.columns.Date, r.columns.Date,
		r.columns.Time, r.columns.Time,
		r.columns.Location, r.columns.Location,
		r.columns.Lat, r.columns.Lat,
		r.columns.Lon, r.columns.Lon,
		r.columns.Tzone, r.columns.Tzone,
		r.columns.TableName, r.columns.OwnerID, r.columns.OwnerID)
	err := r.db.Exec(ctx, query,
		chart.ID,
		chart.OwnerID,
		chart.Name,
		chart.Date,
		chart.Time,
		chart.Location,
		chart.Lat,
		chart.Lon,
		chart.Tzone,
		chart.CreatedAt)
	if err != nil {
		r.Log.Error("failed to save chart",
			"error", err,
			"owner_id", chart.OwnerID,
			"saved_chart_id", chart.ID)
		return fmt.Errorf("failed to save chart: %w", err)
	}
	r.Log.Debug("saved chart stored",
		"owner_id", chart.OwnerID,
		"saved_chart_id", chart.ID)
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		r.columns.TableName,
		r.columns.ID,
		r.columns.OwnerID)
	affected, err := r.db.ExecWithResult(ctx, query, id, ownerID)
	if err != nil {
		r.Log.Error("failed to delete saved chart",
			"error", err,
			"saved_chart_id", id)
		return fmt.Errorf("failed to delete saved chart: %w", err)
	}
	if affected == 0 {
		return domain.ErrSavedChartNotFound
	}
	return nil
}
