package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/campuslink/backend/pkg/logger"
)

// EmailService sends notification mail using the SMTP settings stored
// in system_configs, so operators can change them at runtime without a
// restart.
type EmailService struct {
	configService *SystemConfigService
}

func NewEmailService(configService *SystemConfigService) *EmailService {
	return &EmailService{configService: configService}
}

type smtpSettings struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func (s *EmailService) settings() smtpSettings {
	return smtpSettings{
		Host:     s.configService.GetWithDefault("email_host", ""),
		Port:     s.configService.GetWithDefault("email_port", "587"),
		Username: s.configService.GetWithDefault("email_username", ""),
		Password: s.configService.GetWithDefault("email_password", ""),
		From:     s.configService.GetWithDefault("email_from", "noreply@campuslink.local"),
		Enabled:  s.configService.GetWithDefault("email_enabled", "false") == "true",
	}
}

// Send delivers a plain-text mail. A disabled or unconfigured SMTP
// setup logs and returns nil so callers never fail a request over mail.
func (s *EmailService) Send(to, subject, body string) error {
	cfg := s.settings()
	if !cfg.Enabled || cfg.Host == "" {
		logger.Debugf("email disabled, skipping mail to %s: %s", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := cfg.Host + ":" + cfg.Port
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, []string{to}, []byte(msg)); err != nil {
		logger.Errorf("failed to send mail to %s: %v", to, err)
		return err
	}
	return nil
}

// SendCollaborationDecision notifies a requester that the project owner
// accepted or rejected their collaboration request.
func (s *EmailService) SendCollaborationDecision(to, fullName, projectName, status string) error {
	var subject, body string
	switch status {
	case "accepted":
		subject = fmt.Sprintf("Your request to join %q was accepted", projectName)
		body = fmt.Sprintf("Hi %s,\n\nGood news: the owner of %q accepted your collaboration request. You can now message them from your dashboard and start working together.\n\n— CampusLink", fullName, projectName)
	case "rejected":
		subject = fmt.Sprintf("Update on your request to join %q", projectName)
		body = fmt.Sprintf("Hi %s,\n\nThe owner of %q declined your collaboration request this time. Keep exploring, there are plenty of other projects looking for collaborators.\n\n— CampusLink", fullName, projectName)
	default:
		return fmt.Errorf("unknown decision status: %s", status)
	}
	return s.Send(to, subject, body)
}

// NotificationProcessor adapts the email service into the task
// processor shared by the sync queue and the async worker.
func NotificationProcessor(email *EmailService) func(context.Context, *NotificationTask) error {
	return func(_ context.Context, task *NotificationTask) error {
		switch task.Kind {
		case NotificationCollaborationDecided:
			return email.SendCollaborationDecision(task.Recipient, task.FullName, task.ProjectName, task.Status)
		default:
			logger.Warnf("unknown notification kind: %s", task.Kind)
			return nil
		}
	}
}
