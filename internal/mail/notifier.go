// Package mail delivers generated recommendations over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/westleygroup/card-advisor/internal/config"
	"github.com/westleygroup/card-advisor/internal/model"
)

const subject = "Your Personalized Credit Card Recommendation"

// Notifier sends recommendation emails through a long-lived SMTP
// dialer. The dialer opens a fresh connection per send; credentials
// and transport settings are fixed at construction.
type Notifier struct {
	dialer *gomail.Dialer
	cfg    config.EmailConfig
}

// NewNotifier builds an SMTP notifier from the email transport config.
func NewNotifier(cfg config.EmailConfig) *Notifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Secure
	return &Notifier{dialer: d, cfg: cfg}
}

// VerifyConnection dials the SMTP server once to surface transport
// misconfiguration at startup. Failure is reported, not fatal: the
// service still runs and delivery failures degrade to partial success.
func (n *Notifier) VerifyConnection() error {
	sc, err := n.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp connection failed: %w", err)
	}
	return sc.Close()
}

// SendRecommendation formats the recommendation as an HTML message
// with a plain-text alternative and delivers it to the address.
func (n *Notifier) SendRecommendation(ctx context.Context, to string, rec model.RecommendationResult, profile model.UserProfile) (model.DeliveryOutcome, error) {
	html, err := renderHTML(rec.Text, profile)
	if err != nil {
		return model.DeliveryOutcome{}, fmt.Errorf("render email: %w", err)
	}

	msgID := n.messageID()
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromAddress, n.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", msgID)
	m.SetBody("text/plain", renderText(rec.Text))
	m.AddAlternative("text/html", html)

	if err := n.dialer.DialAndSend(m); err != nil {
		return model.DeliveryOutcome{}, fmt.Errorf("send email: %w", err)
	}
	return model.DeliveryOutcome{Delivered: true, MessageID: msgID}, nil
}

// messageID builds an RFC 5322 Message-ID from the sender domain. SMTP
// reports no provider-side identifier, so this locally generated id is
// what delivery outcomes carry.
func (n *Notifier) messageID() string {
	domain := n.cfg.FromAddress
	if i := strings.LastIndex(domain, "@"); i >= 0 {
		domain = domain[i+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// renderText is the plain-text fallback body.
func renderText(recommendation string) string {
	var b bytes.Buffer
	b.WriteString("YOUR PERSONALIZED CREDIT CARD RECOMMENDATION\n")
	b.WriteString("============================================\n\n")
	b.WriteString(recommendation)
	b.WriteString("\n\n---\n")
	b.WriteString("This is a decision-support tool, not financial advice.\n")
	b.WriteString("Please review card terms before applying.\n\n")
	fmt.Fprintf(&b, "© %d Westley Group\n", time.Now().Year())
	return b.String()
}
