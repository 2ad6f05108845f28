package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/webigo-agency/webigo-backend/internal/devis"
	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

// analysisSchema constrains the text model output: an analysis of the quote
// request plus a full website content brief.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "Two-sentence summary of the client's project",
		},
		"priority": {
			Type:        genai.TypeInteger,
			Description: "Commercial priority from 1 (low) to 5 (urgent)",
		},
		"keywords": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"contentBrief": {
			Type:        genai.TypeObject,
			Description: "Recommended website design brief",
			Properties: map[string]*genai.Schema{
				"brandProfile": {Type: genai.TypeString},
				"sitemap": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"pages": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name": {Type: genai.TypeString},
							"sections": {
								Type: genai.TypeArray,
								Items: &genai.Schema{
									Type: genai.TypeObject,
									Properties: map[string]*genai.Schema{
										"title":   {Type: genai.TypeString},
										"content": {Type: genai.TypeString},
									},
									Required: []string{"title", "content"},
								},
							},
						},
						Required: []string{"name", "sections"},
					},
				},
				"keyFunctionalities": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"seoStrategy": {Type: genai.TypeString},
				"typography": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"headingFont": {Type: genai.TypeString},
						"bodyFont":    {Type: genai.TypeString},
						"rationale":   {Type: genai.TypeString},
					},
					Required: []string{"headingFont", "bodyFont"},
				},
				"designAesthetics": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"tone":              {Type: genai.TypeString},
						"visualInspiration": {Type: genai.TypeString},
						"colorPalette": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"name":          {Type: genai.TypeString},
									"hex":           {Type: genai.TypeString},
									"justification": {Type: genai.TypeString},
								},
								Required: []string{"name", "hex"},
							},
						},
					},
					Required: []string{"tone", "visualInspiration", "colorPalette"},
				},
			},
			Required: []string{"brandProfile", "sitemap", "pages", "keyFunctionalities", "seoStrategy", "designAesthetics"},
		},
	},
	Required: []string{"summary", "priority", "keywords", "contentBrief"},
}

// Analyzer derives an analysis and content brief from a quote request. All
// failures are soft: the pipeline proceeds without enrichment.
type Analyzer struct {
	gen    TextGenerator
	policy Policy
	logger *logging.Logger
}

// NewAnalyzer creates an analyzer with the default retry policy.
func NewAnalyzer(gen TextGenerator, logger *logging.Logger) *Analyzer {
	return NewAnalyzerWithPolicy(gen, DefaultPolicy(), logger)
}

// NewAnalyzerWithPolicy creates an analyzer with a custom retry policy.
func NewAnalyzerWithPolicy(gen TextGenerator, policy Policy, logger *logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Analyzer{gen: gen, policy: policy, logger: logger}
}

type analysisPayload struct {
	Summary  string          `json:"summary"`
	Priority int             `json:"priority"`
	Keywords []string        `json:"keywords"`
	Brief    json.RawMessage `json:"contentBrief"`
}

// Analyze runs the text-generation call under the retry policy and parses the
// structured result. A nil enrichment with a non-nil error means "no analysis
// available"; the caller logs and continues.
func (a *Analyzer) Analyze(ctx context.Context, req *devis.SubmissionRequest) (*devis.Enrichment, error) {
	prompt := buildAnalysisPrompt(req)

	var raw []byte
	err := Do(ctx, a.policy, func(ctx context.Context) error {
		out, genErr := a.gen.GenerateJSON(ctx, prompt)
		if genErr != nil {
			a.logger.Warn("analysis generation attempt failed", "error", genErr)
			return genErr
		}
		raw = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: analysis unavailable: %w", err)
	}

	var payload analysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("enrich: malformed analysis payload: %w", err)
	}
	if payload.Priority < 1 {
		payload.Priority = 1
	}
	if payload.Priority > 5 {
		payload.Priority = 5
	}

	return &devis.Enrichment{
		Analysis: &devis.AnalysisResult{
			Summary:  payload.Summary,
			Priority: payload.Priority,
			Keywords: payload.Keywords,
		},
		Brief: payload.Brief,
	}, nil
}

func buildAnalysisPrompt(req *devis.SubmissionRequest) string {
	var b strings.Builder
	b.WriteString("You are the lead strategist of Webigo, a French web agency. ")
	b.WriteString("A prospect submitted a quote request. Analyze it and produce a website content brief. ")
	b.WriteString("Write all free-text fields in French.\n\n")
	fmt.Fprintf(&b, "Client: %s\n", req.Name)
	if req.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", req.Company)
	}
	fmt.Fprintf(&b, "Offer requested: %s\n", req.ProjectType)
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	fmt.Fprintf(&b, "Project description: %s\n", req.ProjectDescription)
	return b.String()
}
