package mailer

import (
	"fmt"
	"strings"

	"scorecard/internal/roster"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Config holds the outgoing mail settings. An empty APIKey or Recipients
// disables sending.
type Config struct {
	APIKey     string
	FromEmail  string
	FromName   string
	Recipients []string
}

// Mailer sends the weekly scorecard email.
type Mailer struct {
	client *sendgrid.Client
	cfg    Config
}

func New(cfg Config) *Mailer {
	if cfg.FromName == "" {
		cfg.FromName = "Scorecard"
	}
	return &Mailer{client: sendgrid.NewSendClient(cfg.APIKey), cfg: cfg}
}

// Enabled reports whether the mailer is configured to send anything.
func (m *Mailer) Enabled() bool {
	return m.cfg.APIKey != "" && len(m.cfg.Recipients) > 0
}

// SendWeeklyScorecard emails the snapshot to every configured recipient.
func (m *Mailer) SendWeeklyScorecard(snap *roster.Snapshot) error {
	if !m.Enabled() {
		log.Debug().Msg("Mailer disabled, skipping weekly scorecard email")
		return nil
	}

	subject := fmt.Sprintf("Weekly scorecard %s to %s", snap.StartDate, snap.EndDate)
	html := buildScorecardHTML(snap)
	text := buildScorecardText(snap)

	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	for _, recipient := range m.cfg.Recipients {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, subject, to, text, html)

		resp, err := m.client.Send(message)
		if err != nil {
			return fmt.Errorf("failed to send scorecard to %s: %w", recipient, err)
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("scorecard email to %s rejected with status %d", recipient, resp.StatusCode)
		}
		log.Info().Str("to", recipient).Msg("Weekly scorecard email sent")
	}
	return nil
}

func buildScorecardHTML(snap *roster.Snapshot) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>Weekly scorecard %s to %s</h2>", snap.StartDate, snap.EndDate))
	b.WriteString("<table border=\"1\" cellpadding=\"6\">")
	b.WriteString("<tr><th>Stream</th><th>Compliance</th><th>Goal</th></tr>")
	b.WriteString(fmt.Sprintf("<tr><td>Standup</td><td>%.2f%%</td><td>%.2f%%</td></tr>", snap.StandupPercent, snap.Goal))
	b.WriteString(fmt.Sprintf("<tr><td>Trackify</td><td>%.2f%%</td><td>%.2f%%</td></tr>", snap.TrackifyPercent, snap.Goal))
	b.WriteString("</table>")
	b.WriteString("<p>This is an automated email. Please do not reply.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func buildScorecardText(snap *roster.Snapshot) string {
	return fmt.Sprintf(
		"Weekly scorecard %s to %s\n\nStandup: %.2f%% (goal %.2f%%)\nTrackify: %.2f%% (goal %.2f%%)\n",
		snap.StartDate, snap.EndDate,
		snap.StandupPercent, snap.Goal,
		snap.TrackifyPercent, snap.Goal,
	)
}
