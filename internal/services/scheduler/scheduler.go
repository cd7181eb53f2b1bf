// Package scheduler периодически находит клиентов с истекающей
// подпиской и публикует уведомления для отправителя писем.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
)

// CustomerRepository определяет методы хранилища для поиска клиентов.
type CustomerRepository interface {
	// FindCustomersExpiringSoon возвращает активных клиентов,
	// у которых подписка заканчивается в ближайшие дни.
	FindCustomersExpiringSoon(ctx context.Context, within int) ([]*models.Customer, error)
}

// Publisher публикует уведомления в очередь.
type Publisher interface {
	Publish(message any) error
}

// Service находит истекающие подписки и публикует уведомления.
type Service struct {
	repo      CustomerRepository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый Service.
func New(repo CustomerRepository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, log: log}
}

// Run запускает периодический обход: сразу при старте и далее по
// тикеру, пока контекст не отменён.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	s.log.Info("starting sweep for expiring subscriptions")
	customers, err := s.repo.FindCustomersExpiringSoon(ctx, 3)
	if err != nil {
		s.log.Error("failed to find expiring customers", sl.Err(err))
		return
	}
	if len(customers) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", "count", len(customers))

	today := time.Now().UTC()
	for _, c := range customers {
		notice := models.ExpiringNotice{
			CustomerID: c.ID,
			Name:       c.Name,
			Phone:      c.Phone,
			EndDate:    c.EndDate,
			DaysLeft:   subscription.DaysLeft(c.EndDate, today),
		}
		if err := s.publisher.Publish(notice); err != nil {
			s.log.Error("failed to publish notice", sl.Err(err))
		}
	}
}
