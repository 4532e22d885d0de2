package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/metrics"
	"github.com/rpupo63/hospitality-studio-backend/models"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 15 * time.Second

// InquiryNotifier is told about every stored inquiry.
type InquiryNotifier interface {
	NotifyInquiry(ctx context.Context, id string, inquiry models.Inquiry) error
}

// NoopNotifier is used when email is not configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyInquiry(context.Context, string, models.Inquiry) error { return nil }

// EmailNotifier emails the studio a summary of each new inquiry.
type EmailNotifier struct {
	client     *ResendClient
	recipients []string
}

// NewInquiryNotifier returns an EmailNotifier when apiKey, from and at least
// one recipient are set, and a NoopNotifier otherwise.
func NewInquiryNotifier(apiKey, from string, recipients []string, opts ...ResendOption) InquiryNotifier {
	if apiKey == "" || from == "" || len(recipients) == 0 {
		log.Info().Msg("Inquiry email notifications disabled")
		return NoopNotifier{}
	}
	return &EmailNotifier{
		client:     NewResendClient(apiKey, from, opts...),
		recipients: recipients,
	}
}

func (n *EmailNotifier) NotifyInquiry(ctx context.Context, id string, inquiry models.Inquiry) error {
	_, err := n.client.SendEmail(ctx, ResendEmailRequest{
		To:      n.recipients,
		Subject: fmt.Sprintf("New inquiry from %s", inquiry.Name),
		Html:    renderInquiryEmail(id, inquiry),
		ReplyTo: inquiry.Email,
	})
	metrics.RecordNotification(err == nil)
	return err
}

// NotifyAsync runs notifier in the background, detached from the request
// context. Failures are logged only.
func NotifyAsync(ctx context.Context, notifier InquiryNotifier, id string, inquiry models.Inquiry) {
	if _, ok := notifier.(NoopNotifier); ok || notifier == nil {
		return
	}
	logger := log.With().Str("inquiryId", id).Logger()
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if err := notifier.NotifyInquiry(ctx, id, inquiry); err != nil {
			logger.Error().Err(err).Msg("failed to send inquiry notification")
		}
	}()
}

func renderInquiryEmail(id string, inquiry models.Inquiry) string {
	var b strings.Builder
	b.WriteString("<h2>New inquiry</h2><table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><th align=\"left\">%s</th><td>%s</td></tr>", label, html.EscapeString(value))
	}
	row("Name", inquiry.Name)
	row("Email", inquiry.Email)
	row("Phone", deref(inquiry.Phone))
	row("Resort / company", deref(inquiry.ResortOrCompany))
	if inquiry.ProjectType != nil {
		row("Project type", inquiry.ProjectType.String())
	}
	row("Budget", deref(inquiry.BudgetRange))
	row("Timeline", deref(inquiry.Timeline))
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(inquiry.Message), "\n", "<br>"))
	fmt.Fprintf(&b, "<p><small>Reference %s</small></p>", html.EscapeString(id))
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
