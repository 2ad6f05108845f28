package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/webigo-agency/webigo-backend/internal/devis"
	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

// Service composes and sends the two quote-request notifications: one to the
// agency operator, one back to the requester. Both are best-effort; the
// pipeline logs failures and carries on.
type Service struct {
	email       EmailSender
	notifyEmail string
	logger      *logging.Logger
}

// NewService creates a notification service. notifyEmail is the operator
// address receiving new quote requests.
func NewService(email EmailSender, notifyEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:       email,
		notifyEmail: notifyEmail,
		logger:      logger,
	}
}

// NotifyAgency emails the operator about a freshly persisted submission,
// including the AI analysis and content brief when available.
func (s *Service) NotifyAgency(ctx context.Context, sub *devis.Submission) error {
	if s.email == nil || s.notifyEmail == "" {
		s.logger.Debug("notify: agency email not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("Nouvelle demande de devis – %s", sub.Name)

	var body strings.Builder
	fmt.Fprintf(&body, "Nouvelle demande de devis reçue.\n\n")
	fmt.Fprintf(&body, "Nom: %s\n", sub.Name)
	fmt.Fprintf(&body, "Email: %s\n", sub.Email)
	if sub.Phone != "" {
		fmt.Fprintf(&body, "Téléphone: %s\n", sub.Phone)
	}
	if sub.Company != "" {
		fmt.Fprintf(&body, "Entreprise: %s\n", sub.Company)
	}
	fmt.Fprintf(&body, "Offre: %s\n", sub.ProjectType)
	if sub.Budget != "" {
		fmt.Fprintf(&body, "Budget: %s\n", sub.Budget)
	}
	fmt.Fprintf(&body, "\nDescription du projet:\n%s\n", sub.ProjectDescription)
	if sub.Analysis != nil {
		fmt.Fprintf(&body, "\nAnalyse IA:\n")
		fmt.Fprintf(&body, "Priorité: %s (%d/5)\n", priorityIndicator(sub.Analysis.Priority), sub.Analysis.Priority)
		fmt.Fprintf(&body, "Résumé: %s\n", sub.Analysis.Summary)
		if len(sub.Analysis.Keywords) > 0 {
			fmt.Fprintf(&body, "Mots-clés: %s\n", strings.Join(sub.Analysis.Keywords, ", "))
		}
	}

	msg := EmailMessage{
		To:      s.notifyEmail,
		Subject: subject,
		Body:    body.String(),
		HTML:    s.agencyHTML(sub),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send agency notification", "error", err, "submission_id", sub.ID)
		return fmt.Errorf("notify: agency notification: %w", err)
	}
	s.logger.Info("notify: agency notified", "submission_id", sub.ID)
	return nil
}

func (s *Service) agencyHTML(sub *devis.Submission) string {
	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return fmt.Sprintf(`<tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>`,
			label, html.EscapeString(value))
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 600px;">`)
	fmt.Fprintf(&b, `<h2 style="color: #4F46E5;">Nouvelle demande de devis</h2>`)
	b.WriteString(`<table style="border-collapse: collapse; margin: 20px 0;">`)
	b.WriteString(row("Nom", sub.Name))
	b.WriteString(row("Email", sub.Email))
	b.WriteString(row("Téléphone", sub.Phone))
	b.WriteString(row("Entreprise", sub.Company))
	b.WriteString(row("Offre", sub.ProjectType))
	b.WriteString(row("Budget", sub.Budget))
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<blockquote style="background-color: #f4f5f7; border-left: 5px solid #6366f1; margin: 0; padding: 10px 20px;"><p style="margin: 0;"><em>%s</em></p></blockquote>`,
		html.EscapeString(sub.ProjectDescription))

	if sub.Analysis != nil {
		fmt.Fprintf(&b, `<h3 style="color: #4F46E5;">Analyse IA</h3>`)
		fmt.Fprintf(&b, `<p><strong>Priorité :</strong> %s (%d/5)</p>`, priorityIndicator(sub.Analysis.Priority), sub.Analysis.Priority)
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(sub.Analysis.Summary))
		if len(sub.Analysis.Keywords) > 0 {
			b.WriteString(`<p>`)
			for _, kw := range sub.Analysis.Keywords {
				fmt.Fprintf(&b, `<span style="display: inline-block; background: #eef2ff; color: #4F46E5; border-radius: 9999px; padding: 2px 10px; margin: 2px; font-size: 12px;">%s</span>`,
					html.EscapeString(kw))
			}
			b.WriteString(`</p>`)
		}
	}

	if len(sub.Brief) > 0 {
		fmt.Fprintf(&b, `<h3 style="color: #4F46E5;">Brief de contenu généré</h3>`)
		fmt.Fprintf(&b, `<pre style="background: #f4f5f7; padding: 12px; border-radius: 8px; font-size: 12px; overflow-x: auto;">%s</pre>`,
			html.EscapeString(indentJSON(sub.Brief)))
	}

	b.WriteString(`<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">— Webigo</p></div>`)
	return b.String()
}

// ConfirmRequester emails the requester an acknowledgement of their quote
// request.
func (s *Service) ConfirmRequester(ctx context.Context, sub *devis.Submission) error {
	if s.email == nil {
		return fmt.Errorf("notify: email sender not configured")
	}

	subject := "Webigo - Confirmation de votre demande de devis"
	body := fmt.Sprintf(`Bonjour %s,

Merci de nous avoir contactés ! Nous confirmons avoir bien reçu votre demande de devis pour un projet de type : %s.

Notre équipe va étudier votre projet avec la plus grande attention et reviendra vers vous dans les plus brefs délais (généralement sous 24 à 48 heures).

Pour rappel, voici le descriptif de votre projet :
%s

À très bientôt,
L'équipe Webigo`, sub.Name, sub.ProjectType, sub.ProjectDescription)

	htmlBody := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<h1 style="color: #4F46E5;">Bonjour %s,</h1>
<p>Merci de nous avoir contactés ! Nous confirmons avoir bien reçu votre demande de devis pour un projet de type : <strong>%s</strong>.</p>
<p>Notre équipe va étudier votre projet avec la plus grande attention et reviendra vers vous dans les plus brefs délais (généralement sous 24 à 48 heures).</p>
<p>Pour rappel, voici le descriptif de votre projet :</p>
<blockquote style="background-color: #f4f5f7; border-left: 5px solid #6366f1; margin: 0; padding: 10px 20px;">
  <p style="margin: 0;"><em>%s</em></p>
</blockquote>
<p>À très bientôt,<br><strong>L'équipe Webigo</strong></p>
</div>`,
		html.EscapeString(sub.Name), html.EscapeString(sub.ProjectType), html.EscapeString(sub.ProjectDescription))

	msg := EmailMessage{
		To:      sub.Email,
		ToName:  sub.Name,
		Subject: subject,
		Body:    body,
		HTML:    htmlBody,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send requester confirmation", "error", err, "submission_id", sub.ID)
		return fmt.Errorf("notify: requester confirmation: %w", err)
	}
	s.logger.Info("notify: requester confirmation sent", "to", sub.Email, "submission_id", sub.ID)
	return nil
}

func priorityIndicator(priority int) string {
	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}
	return strings.Repeat("★", priority) + strings.Repeat("☆", 5-priority)
}

func indentJSON(raw json.RawMessage) string {
	var buf strings.Builder
	var anyDoc any
	if err := json.Unmarshal(raw, &anyDoc); err != nil {
		return string(raw)
	}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(anyDoc); err != nil {
		return string(raw)
	}
	return strings.TrimRight(buf.String(), "\n")
}
