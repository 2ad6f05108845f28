package devis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/webigo-agency/webigo-backend/internal/observability/metrics"
	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

// AckMessage is returned to the requester once their submission is recorded.
const AckMessage = "Demande de devis reçue et enregistrée avec succès !"

// Analyzer produces the optional AI enrichment for a validated request.
type Analyzer interface {
	Analyze(ctx context.Context, req *SubmissionRequest) (*Enrichment, error)
}

// Imager renders a preview image from a content brief. It returns "" when no
// image could be produced; it never fails the pipeline.
type Imager interface {
	PreviewImage(ctx context.Context, brief json.RawMessage) string
}

// Notifier sends the post-persistence notifications.
type Notifier interface {
	NotifyAgency(ctx context.Context, sub *Submission) error
	ConfirmRequester(ctx context.Context, sub *Submission) error
}

// Result summarizes what the pipeline accomplished for a submission.
type Result struct {
	Message   string
	EmailSent bool
	ImageURL  string
}

// Pipeline processes one quote request end to end:
// validate, enrich (soft-fail), persist (hard-fail), notify (soft-fail ×2).
// Steps run sequentially; persistence failure is the only terminal error
// after validation.
type Pipeline struct {
	repo     Repository
	analyzer Analyzer
	imager   Imager
	notifier Notifier
	metrics  *metrics.PipelineMetrics
	logger   *logging.Logger
}

// NewPipeline wires the pipeline's collaborators. analyzer, imager, notifier
// and metrics may be nil; the corresponding steps are then skipped.
func NewPipeline(repo Repository, analyzer Analyzer, imager Imager, notifier Notifier, m *metrics.PipelineMetrics, logger *logging.Logger) *Pipeline {
	if repo == nil {
		panic("devis: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{
		repo:     repo,
		analyzer: analyzer,
		imager:   imager,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Process handles a single submission. Validation errors and persistence
// failures are returned; enrichment and notification failures are logged and
// absorbed.
func (p *Pipeline) Process(ctx context.Context, req *SubmissionRequest) (*Result, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		p.metrics.ObserveSubmission("rejected")
		return nil, err
	}

	var enr *Enrichment
	if p.analyzer != nil {
		e, err := p.analyzer.Analyze(ctx, req)
		if err != nil {
			p.logger.Warn("analysis unavailable, continuing without enrichment", "error", err)
			p.metrics.ObserveEnrichment("analysis", "failed")
		} else {
			enr = e
			p.metrics.ObserveEnrichment("analysis", "ok")
		}
	}

	imageURL := ""
	if p.imager != nil && enr != nil && len(enr.Brief) > 0 {
		imageURL = p.imager.PreviewImage(ctx, enr.Brief)
		if imageURL != "" {
			p.metrics.ObserveEnrichment("image", "ok")
		} else {
			p.metrics.ObserveEnrichment("image", "failed")
		}
	}

	sub, err := p.repo.Create(ctx, req, enr)
	if err != nil {
		p.logger.Error("failed to persist submission", "error", err, "email", req.Email)
		p.metrics.ObserveSubmission("persist_failed")
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	p.logger.Info("submission persisted", "id", sub.ID, "project_type", sub.ProjectType, "enriched", enr != nil)

	// Notifications only after the submission is durably recorded; the
	// requester is never confirmed for a lost submission.
	emailSent := false
	if p.notifier != nil {
		if err := p.notifier.NotifyAgency(ctx, sub); err != nil {
			p.logger.Error("agency notification failed", "error", err, "id", sub.ID)
			p.metrics.ObserveEmail("agency", "failed")
		} else {
			p.metrics.ObserveEmail("agency", "ok")
		}

		if err := p.notifier.ConfirmRequester(ctx, sub); err != nil {
			p.logger.Error("requester confirmation failed", "error", err, "id", sub.ID)
			p.metrics.ObserveEmail("requester", "failed")
		} else {
			emailSent = true
			p.metrics.ObserveEmail("requester", "ok")
		}
	}

	p.metrics.ObserveSubmission("accepted")
	p.metrics.ObserveLatency(time.Since(start).Seconds())

	return &Result{
		Message:   AckMessage,
		EmailSent: emailSent,
		ImageURL:  imageURL,
	}, nil
}
