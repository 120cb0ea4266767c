package alerter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/kundali-service/internal/adapters/secondary/alerter"
	"github.com/admin/kundali-service/internal/ports/service"
)

// Service реализует IAlerterService. Без клиента алерт только пишется в лог
type Service struct {
	client  *alerter.Client
	appName string
	log     *slog.Logger
}

// New создаёт новый сервис для отправки алертов
func New(client *alerter.Client, appName string, log *slog.Logger) service.IAlerterService {
	return &Service{
		client:  client,
		appName: appName,
		log:     log,
	}
}

// SendAlert отправляет алерт с префиксом приложения
func (s *Service) SendAlert(ctx context.Context, message string) error {
	text := fmt.Sprintf("[%s] %s", s.appName, message)

	if s.client == nil {
		s.log.Error("alert (telegram alerter is not configured)", "message", text)
		return nil
	}

	return s.client.SendAlert(ctx, text)
}
