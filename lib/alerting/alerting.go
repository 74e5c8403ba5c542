package alerting

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/alerting")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Config struct {
	Smtp SmtpConfig `json:"smtp"`
	To   []string   `json:"to"`
	// minimum minutes between alert emails, defaults to 60
	CooldownMinutes int `json:"cooldown_minutes"`
}

// Mailer emails the operator when the portal stops looking like the
// portal (selectors no longer match, login flow changed). A nil Mailer
// is valid and does nothing, the server runs fine without smtp config.
type Mailer struct {
	config Config

	mu       sync.Mutex
	lastSent time.Time
}

func NewMailer(config Config) *Mailer {
	if config.Smtp.Server == "" || len(config.To) == 0 {
		return nil
	}
	if config.CooldownMinutes <= 0 {
		config.CooldownMinutes = 60
	}
	return &Mailer{config: config}
}

// ScrapeFailure reports a scrape that failed for a structural reason.
// Sends are rate-limited so a burst of broken requests produces one
// email, not hundreds.
func (m *Mailer) ScrapeFailure(ctx context.Context, portal string, cause error) {
	if m == nil {
		return
	}

	m.mu.Lock()
	cooldown := time.Duration(m.config.CooldownMinutes) * time.Minute
	if time.Since(m.lastSent) < cooldown {
		m.mu.Unlock()
		return
	}
	m.lastSent = time.Now()
	m.mu.Unlock()

	ctx, span := tracer.Start(ctx, "mailer:ScrapeFailure")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Bunkmate <%s>", m.config.Smtp.EmailAddress)
	mail.To = m.config.To
	mail.Subject = fmt.Sprintf("scrape failure: %s", portal)
	mail.Text = []byte(fmt.Sprintf(
		`A scrape against %s failed and needs a look:

%s

Further alerts are suppressed for %d minutes.`,
		portal, cause.Error(), m.config.CooldownMinutes,
	))

	addr := fmt.Sprintf("%s:%d", m.config.Smtp.Server, m.config.Smtp.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", m.config.Smtp.EmailAddress, m.config.Smtp.Password, m.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send alert email")
		slog.ErrorContext(ctx, "failed to send alert email", "err", err)
	}
}
