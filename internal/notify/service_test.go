package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/webigo-agency/webigo-backend/internal/devis"
	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

type captureSender struct {
	messages []EmailMessage
	err      error
}

func (c *captureSender) Send(ctx context.Context, msg EmailMessage) error {
	c.messages = append(c.messages, msg)
	return c.err
}

func sampleSubmission() *devis.Submission {
	return &devis.Submission{
		ID:                 "11111111-2222-3333-4444-555555555555",
		Name:               "Jean Dupont",
		Email:              "jean@example.com",
		Phone:              "0612345678",
		Company:            "Dupont Coiffure",
		ProjectType:        "Site Vitrine Essentiel",
		ProjectDescription: "Je veux un site pour mon salon de coiffure avec prise de rendez-vous.",
		Budget:             "1 500 € - 3 000 €",
		CreatedAt:          time.Now().UTC(),
	}
}

func enrichedSubmission() *devis.Submission {
	sub := sampleSubmission()
	sub.Analysis = &devis.AnalysisResult{
		Summary:  "Salon de coiffure cherchant un site vitrine avec réservation en ligne.",
		Priority: 4,
		Keywords: []string{"coiffure", "rendez-vous", "vitrine"},
	}
	sub.Brief = json.RawMessage(`{"brandProfile":"salon moderne","designAesthetics":{"tone":"élégant","visualInspiration":"minimalisme","colorPalette":[]}}`)
	return sub
}

func TestNotifyAgency(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, "agence@webigo.fr", logging.Default())

	if err := svc.NotifyAgency(context.Background(), enrichedSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}

	msg := sender.messages[0]
	if msg.To != "agence@webigo.fr" {
		t.Errorf("unexpected recipient: %q", msg.To)
	}
	if msg.Subject != "Nouvelle demande de devis – Jean Dupont" {
		t.Errorf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{"Jean Dupont", "jean@example.com", "0612345678", "Dupont Coiffure", "Site Vitrine Essentiel", "1 500 € - 3 000 €", "Analyse IA", "★★★★☆", "coiffure, rendez-vous, vitrine"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("plain body missing %q", want)
		}
	}
	for _, want := range []string{"Nouvelle demande de devis", "★★★★☆", "Brief de contenu généré", "brandProfile"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}

func TestNotifyAgency_WithoutEnrichment(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, "agence@webigo.fr", logging.Default())

	if err := svc.NotifyAgency(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := sender.messages[0]
	if strings.Contains(msg.Body, "Analyse IA") {
		t.Error("plain body must not mention analysis when absent")
	}
	if strings.Contains(msg.HTML, "Brief de contenu généré") {
		t.Error("html body must not mention brief when absent")
	}
}

func TestNotifyAgency_NotConfigured(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, "", logging.Default())

	if err := svc.NotifyAgency(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("expected silent skip, got %v", err)
	}
	if len(sender.messages) != 0 {
		t.Errorf("expected no message, got %d", len(sender.messages))
	}
}

func TestNotifyAgency_SendFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("sendgrid 500")}
	svc := NewService(sender, "agence@webigo.fr", logging.Default())

	if err := svc.NotifyAgency(context.Background(), sampleSubmission()); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfirmRequester(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, "agence@webigo.fr", logging.Default())

	if err := svc.ConfirmRequester(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := sender.messages[0]
	if msg.To != "jean@example.com" || msg.ToName != "Jean Dupont" {
		t.Errorf("unexpected recipient: %q (%q)", msg.To, msg.ToName)
	}
	if msg.Subject != "Webigo - Confirmation de votre demande de devis" {
		t.Errorf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{"Bonjour Jean Dupont", "Site Vitrine Essentiel", "salon de coiffure", "L'équipe Webigo"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("plain body missing %q", want)
		}
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}

func TestConfirmRequester_NoSender(t *testing.T) {
	svc := NewService(nil, "agence@webigo.fr", logging.Default())

	if err := svc.ConfirmRequester(context.Background(), sampleSubmission()); err == nil {
		t.Fatal("expected error without a sender")
	}
}

func TestPriorityIndicator(t *testing.T) {
	tests := []struct {
		priority int
		want     string
	}{
		{1, "★☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
		{0, "★☆☆☆☆"},
		{9, "★★★★★"},
	}
	for _, tt := range tests {
		if got := priorityIndicator(tt.priority); got != tt.want {
			t.Errorf("priorityIndicator(%d) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}
