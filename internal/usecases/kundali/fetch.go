package kundali

import (
	"context"
	"fmt"

	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/service"
	"golang.org/x/sync/errgroup"
)

// chartData сырые данные от астро-API до нормализации
type chartData struct {
	D1           *domain.SignTable
	D9           *domain.SignTable // nil, если навамшу получить не удалось
	D1SVG        string
	D9SVG        string
	Degradations domain.Degradations
}

// fetchChartData четыре независимых запроса параллельно. Ошибка одного не отменяет остальные.
// Возвращает ошибку только для невалидного момента или отменённого контекста.
func (s *Service) fetchChartData(ctx context.Context, moment domain.BirthMoment) (*chartData, error) {
	if err := moment.Validate(); err != nil {
		return nil, err
	}

	var (
		d1, d9             *domain.SignTable
		d1SVG, d9SVG       string
		d1Err, d9Err       error
		d1SVGErr, d9SVGErr error
	)

	// ошибки вызовов API не роняют группу; группа падает только при отмене прогона,
	// отменённый прогон не должен превращаться в карту на подставных данных
	var g errgroup.Group
	g.Go(func() error {
		d1, d1Err = s.AstroAPIService.PlanetSigns(ctx, moment)
		return ctx.Err()
	})
	g.Go(func() error {
		d9, d9Err = s.AstroAPIService.NavamsaSigns(ctx, moment)
		return ctx.Err()
	})
	g.Go(func() error {
		d1SVG, d1SVGErr = s.AstroAPIService.ChartSVG(ctx, moment, service.ChartD1)
		return ctx.Err()
	})
	g.Go(func() error {
		d9SVG, d9SVGErr = s.AstroAPIService.ChartSVG(ctx, moment, service.ChartD9)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("chart fetch aborted: %w", err)
	}

	data := &chartData{D1: d1, D9: d9, D1SVG: d1SVG, D9SVG: d9SVG}

	if d1Err != nil || d1 == nil {
		s.Log.Warn("planet positions unavailable, using mock table",
			"error", d1Err,
		)
		data.D1 = mockSignTable()
		data.Degradations = data.Degradations.Add(domain.DegradedMockPositions)
	}

	if d9Err != nil {
		s.Log.Warn("navamsa unavailable, falling back to D1 signs",
			"error", d9Err,
		)
		data.D9 = nil
		data.Degradations = data.Degradations.Add(domain.DegradedNavamsaFallback)
	}

	if d1SVGErr != nil || d9SVGErr != nil {
		s.Log.Debug("chart svg unavailable",
			"d1_error", d1SVGErr,
			"d9_error", d9SVGErr,
		)
		data.Degradations = data.Degradations.Add(domain.DegradedChartSVGMissing)
	}

	return data, nil
}
