// Package sender отправляет администратору письма об истекающих
// подписках клиентов, потребляя уведомления планировщика.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/smtp"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// Service отправляет письма через SMTP-транспорт.
type Service struct {
	transport  smtp.TransportInterface
	adminEmail string
	log        *slog.Logger
}

// New создает новый Service. Все письма уходят на адрес администратора.
func New(transport smtp.TransportInterface, adminEmail string, log *slog.Logger) *Service {
	return &Service{
		transport:  transport,
		adminEmail: adminEmail,
		log:        log,
	}
}

// SendExpiringNotice обрабатывает сообщение об истекающей подписке:
// администратор получает письмо с именем и телефоном клиента,
// чтобы связаться с ним до окончания оплаченного периода.
func (s *Service) SendExpiringNotice(body []byte) error {
	var notice models.ExpiringNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := fmt.Sprintf("Подписка клиента %s заканчивается через %d дн.", notice.Name, notice.DaysLeft)
	bodyText := fmt.Sprintf(
		"Клиент: %s\nТелефон: %s\nОплачено до: %s\nОсталось дней: %d\n\nСвяжитесь с клиентом для продления подписки.",
		notice.Name, notice.Phone, notice.EndDate.Format("2006-01-02"), notice.DaysLeft)

	return s.sendEmail([]string{s.adminEmail}, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.log.Warn("failed to close SMTP client", sl.Err(closeErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
