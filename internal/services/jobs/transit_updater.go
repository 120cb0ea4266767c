package jobs

import (
	"context"
	"sync/atomic"
	"time"
)

const transitUpdaterName = "transit-updater"

// transitRefresher часть usecase, которую дёргает джоба
type transitRefresher interface {
	UpdateTransits(ctx context.Context, at time.Time) error
}

// TransitUpdater обновляет снимок текущих транзитов в кеше каждый день в 05:00 по IST.
// Первый запуск сразу после старта, чтобы эндпоинт не ждал до утра
type TransitUpdater struct {
	refresher transitRefresher
	location  *time.Location
	started   atomic.Bool
}

// NewTransitUpdater создаёт джобу обновления транзитов
func NewTransitUpdater(refresher transitRefresher) *TransitUpdater {
	location, _ := time.LoadLocation("Asia/Kolkata")
	if location == nil {
		location = time.FixedZone("IST", 5*3600+30*60)
	}

	return &TransitUpdater{
		refresher: refresher,
		location:  location,
	}
}

func (j *TransitUpdater) Name() string {
	return transitUpdaterName
}

// NextRun ближайшие 05:00 по IST строго после now
func (j *TransitUpdater) NextRun(now time.Time) time.Time {
	if j.started.CompareAndSwap(false, true) {
		return now
	}

	local := now.In(j.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), 5, 0, 0, 0, j.location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run пересчитывает транзиты на текущий момент
func (j *TransitUpdater) Run(ctx context.Context) error {
	return j.refresher.UpdateTransits(ctx, time.Now().In(j.location))
}
