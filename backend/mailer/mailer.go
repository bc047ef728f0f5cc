// Package mailer sends the notification emails over SMTP. Sends are
// retried a fixed number of times with a fixed delay; a failed send is
// reported to the caller as an error and never affects persisted data.
package mailer

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"studyquest/backend/config"
	"studyquest/backend/models"
	"studyquest/backend/progress"
)

const (
	maxRetries = 3
	retryDelay = 1 * time.Second
)

var ErrNotConfigured = errors.New("email service is not configured")

type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether both SMTP credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.MailUsername != "" && m.cfg.MailPassword != ""
}

func (m *Mailer) dialer() *gomail.Dialer {
	return gomail.NewDialer(m.cfg.MailServer, m.cfg.MailPort, m.cfg.MailUsername, m.cfg.MailPassword)
}

// ValidateConfig checks the credentials and opens a connection to the
// SMTP server without sending anything.
func (m *Mailer) ValidateConfig() (bool, string) {
	if !m.Configured() {
		return false, "Email configuration is incomplete. Please check MAIL_USERNAME and MAIL_PASSWORD in .env file."
	}
	conn, err := m.dialer().Dial()
	if err != nil {
		return false, fmt.Sprintf("Email configuration error: %v", err)
	}
	_ = conn.Close()
	return true, "Email configuration is valid and connection successful."
}

// Send delivers one HTML email, retrying up to maxRetries times with a
// fixed delay between attempts.
func (m *Mailer) Send(subject string, recipients []string, htmlBody string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailUsername)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := m.dialer()
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = dialer.DialAndSend(msg)
		if lastErr == nil {
			return nil
		}
		if attempt < maxRetries {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

// sendToSelf sends to the configured account, which is the only recipient
// in a single-user setup.
func (m *Mailer) sendToSelf(subject, htmlBody string) error {
	return m.Send(subject, []string{m.cfg.MailUsername}, htmlBody)
}

// SendTestEmail verifies the configuration end to end.
func (m *Mailer) SendTestEmail() error {
	return m.sendToSelf("🐱 Test Email from Study Quest", testEmailBody())
}

// TestReminder mails a reminder for an upcoming test with its current
// progress.
func (m *Mailer) TestReminder(subjectName, testName, testDate string, progressPct float64) error {
	subject := fmt.Sprintf("📚 Test Reminder: %s - %s", testName, subjectName)
	days := progress.DaysRemaining(testDate)
	return m.sendToSelf(subject, reminderBody(subjectName, testName, testDate, days, progressPct))
}

// DailyProgress mails the first-activity-of-the-day summary for a test.
// Implements studyplan.Notifier.
func (m *Mailer) DailyProgress(subjectName, testName string, completed models.RecordList) error {
	subject := fmt.Sprintf("📊 Daily Progress: %s - %s", testName, subjectName)
	return m.sendToSelf(subject, dailyProgressBody(subjectName, testName, completed))
}

// TestComplete mails the preparation-complete notification. Implements
// studyplan.Notifier.
func (m *Mailer) TestComplete(subjectName, testName string, progressPct float64, completedUnits, totalUnits int) error {
	subject := fmt.Sprintf("🎉 Test Complete: %s - %s", testName, subjectName)
	return m.sendToSelf(subject, completeBody(subjectName, testName, progressPct, completedUnits, totalUnits))
}

// UpcomingSummary mails one digest covering every upcoming test.
func (m *Mailer) UpcomingSummary(tests []models.TestOverview) error {
	subject := fmt.Sprintf("📅 Upcoming Tests Summary (%d tests)", len(tests))
	return m.sendToSelf(subject, upcomingSummaryBody(tests))
}
