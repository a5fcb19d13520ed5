// Package mailer renders and delivers the service's transactional
// emails over SMTP.  Delivery uses STARTTLS with explicit connection
// deadlines so a dead relay cannot hang the notification consumer.
package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer holds SMTP relay credentials and the sender identity placed
// in the From header.  When Host is empty the mailer runs in dry-run
// mode: messages are logged and dropped instead of delivered, which
// keeps local development working without a relay.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

// New constructs a Mailer.  Pass an empty host to enable dry-run mode.
func New(host, port, username, password, from, fromName string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from, fromName: fromName}
}

type codeData struct {
	Username string
	Code     string
}

type reservationData struct {
	Username     string
	LockerNumber string
	StartDate    string
	EndDate      string
}

type reminderData struct {
	Username       string
	LockerNumber   string
	ExpirationTime string
}

// SendVerification emails the six character verification code issued
// at signup or on a resend request.
func (m *Mailer) SendVerification(to, username, code string) error {
	return m.send(to, "Vérifiez votre email", tmplVerification, codeData{Username: username, Code: code})
}

// SendWelcome emails the post-verification welcome message.
func (m *Mailer) SendWelcome(to, username string) error {
	return m.send(to, "Bienvenue !", tmplWelcome, codeData{Username: username})
}

// SendPasswordResetRequest emails the password reset code.
func (m *Mailer) SendPasswordResetRequest(to, username, code string) error {
	return m.send(to, "Réinitialisation de mot de passe", tmplPasswordResetRequest, codeData{Username: username, Code: code})
}

// SendPasswordResetSuccess confirms that the password was changed.
func (m *Mailer) SendPasswordResetSuccess(to string) error {
	return m.send(to, "Mot de passe réinitialisé", tmplPasswordResetSuccess, codeData{})
}

// SendReservationConfirmed emails the booking confirmation with locker
// number and rental dates.
func (m *Mailer) SendReservationConfirmed(to, username, lockerNumber, startDate, endDate string) error {
	return m.send(to, "Casier Réservé", tmplReservationConfirmed, reservationData{
		Username: username, LockerNumber: lockerNumber, StartDate: startDate, EndDate: endDate,
	})
}

// SendReservationExpired notifies the user that their rental ended and
// the locker was released.
func (m *Mailer) SendReservationExpired(to, username, lockerNumber string) error {
	return m.send(to, "Réservation Expirée", tmplReservationExpired, reservationData{
		Username: username, LockerNumber: lockerNumber,
	})
}

// SendReservationReminder warns the user that their rental ends within
// the next 24 hours.
func (m *Mailer) SendReservationReminder(to, username, lockerNumber, expirationTime string) error {
	return m.send(to, "Rappel : votre réservation expire bientôt", tmplReservationReminder, reminderData{
		Username: username, LockerNumber: lockerNumber, ExpirationTime: expirationTime,
	})
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	if m.host == "" {
		log.Printf("[MAIL] dry-run: skipping delivery to=%s subject=%q", to, subject)
		return nil
	}
	fromHeader := fmt.Sprintf("%s <%s>", m.fromName, m.from)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", encodeSubject(subject)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		buf.String(),
	}, "\r\n")
	log.Printf("[MAIL] smtp sending to=%s via=%s:%s", to, m.host, m.port)
	if err := m.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}
	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (m *Mailer) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// Deadline covers the whole SMTP exchange
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// encodeSubject wraps a subject line in RFC 2047 encoded words when it
// contains non-ASCII characters, which the French subjects do.
func encodeSubject(s string) string {
	return mime.QEncoding.Encode("UTF-8", s)
}

var frenchDays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDateFR renders a timestamp as a long-form French date, e.g.
// "lundi 2 mars 2026 à 15:04".  Times are shown in UTC.
func FormatDateFR(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %d %s %d à %02d:%02d",
		frenchDays[int(t.Weekday())], t.Day(), frenchMonths[int(t.Month())-1], t.Year(),
		t.Hour(), t.Minute())
}
