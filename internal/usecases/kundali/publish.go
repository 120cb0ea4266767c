package kundali

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/admin/kundali-service/internal/domain"
)

const (
	chartImageContentType = "image/svg+xml"
	chartImageURLTTL      = 24 * time.Hour
)

// storeChartImages выкладывает svg в S3 и проставляет ссылки. Ошибки не критичны: svg остаётся в ответе
func (s *Service) storeChartImages(ctx context.Context, chart *domain.ChartResponse) {
	if s.S3Client == nil {
		return
	}

	upload := func(name, svg string) string {
		if svg == "" {
			return ""
		}
		path := fmt.Sprintf("charts/%s/%s.svg", chart.RequestID, name)
		if err := s.S3Client.PutFile(ctx, path, []byte(svg), chartImageContentType); err != nil {
			s.Log.Warn("failed to upload chart image",
				"error", err,
				"request_id", chart.RequestID,
				"path", path,
			)
			return ""
		}
		url, err := s.S3Client.GetPresignedURL(ctx, path, chartImageURLTTL)
		if err != nil {
			s.Log.Warn("failed to presign chart image",
				"error", err,
				"request_id", chart.RequestID,
				"path", path,
			)
			return ""
		}
		return url
	}

	chart.Charts.D1URL = upload("d1", chart.Charts.D1SVG)
	chart.Charts.D9URL = upload("d9", chart.Charts.D9SVG)
}

// publishChartGenerated событие для аналитики, доставка best effort
func (s *Service) publishChartGenerated(ctx context.Context, sessionID, language string, chart *domain.ChartResponse) {
	if s.EventProducer == nil {
		return
	}

	payload, err := json.Marshal(domain.ChartGeneratedEvent{
		Type:         domain.EventChartGenerated,
		RequestID:    chart.RequestID,
		SessionID:    sessionID,
		Ascendant:    chart.Basic.Ascendant,
		MoonSign:     chart.Basic.MoonSign,
		Language:     language,
		Degradations: chart.Degradations,
		GeneratedAt:  chart.GeneratedAt,
	})
	if err != nil {
		s.Log.Error("failed to marshal chart event", "error", err)
		return
	}

	if err := s.EventProducer.Send(ctx, chart.RequestID, payload); err != nil {
		s.Log.Warn("failed to publish chart event",
			"error", err,
			"request_id", chart.RequestID,
		)
	}
}
