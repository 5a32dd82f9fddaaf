package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/salon-api/internal/model"
)

type Service interface {
	SendReminder(ctx context.Context, to string, appointment *model.Appointment) error
	SendBookingNotice(ctx context.Context, to string, appointment *model.Appointment) error
	SendCustom(ctx context.Context, to, subject, content string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) Service {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *service) SendReminder(_ context.Context, to string, appointment *model.Appointment) error {
	subject := "Appointment reminder"
	body := fmt.Sprintf(
		"Hello %s,<br><br>This is a reminder for your %s appointment on %s at %s.",
		appointment.CustomerName,
		appointment.ServiceName,
		appointment.Date,
		appointment.Time,
	)
	return s.send(to, subject, body)
}

func (s *service) SendBookingNotice(_ context.Context, to string, appointment *model.Appointment) error {
	subject := "New appointment"
	body := fmt.Sprintf(
		"New %s booking: %s on %s at %s (%s).",
		appointment.Source,
		appointment.ServiceName,
		appointment.Date,
		appointment.Time,
		appointment.CustomerName,
	)
	return s.send(to, subject, body)
}

func (s *service) SendCustom(_ context.Context, to, subject, content string) error {
	return s.send(to, subject, content)
}

func (s *service) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
