// Package sender содержит сервис отправки писем со ссылкой на сброс пароля.
//
// Отправка синхронная: ошибка доставки возвращается вызывающему,
// компенсирующих действий нет — уже выданный токен сброса остается
// действительным до истечения своего срока.
package sender

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/store-rating-service/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/smtp"
)

// SenderService отвечает за формирование и отправку писем сброса пароля.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр SenderService.
func New(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendResetLink отправляет пользователю письмо со ссылкой на сброс пароля.
func (s *SenderService) SendResetLink(to, resetLink string) error {
	subject := "Password Reset"
	bodyText := fmt.Sprintf(`You requested a password reset.

Follow the link to set a new password: %s

This link expires in 15 minutes. If you did not request a reset, ignore this message.`, resetLink)

	return s.sendEmail([]string{to}, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
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
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
