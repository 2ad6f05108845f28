package enrich

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

// designAesthetics is the one subsection of the content brief the pipeline
// reads: it seeds the preview-image prompt.
type designAesthetics struct {
	Tone              string         `json:"tone"`
	VisualInspiration string         `json:"visualInspiration"`
	ColorPalette      []paletteColor `json:"colorPalette"`
}

type paletteColor struct {
	Name          string `json:"name"`
	Hex           string `json:"hex"`
	Justification string `json:"justification"`
}

// Imager renders a homepage mockup from a content brief's design aesthetics.
type Imager struct {
	gen    ImageGenerator
	logger *logging.Logger
}

// NewImager creates a preview-image generator.
func NewImager(gen ImageGenerator, logger *logging.Logger) *Imager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Imager{gen: gen, logger: logger}
}

// PreviewImage returns a data URI for a generated homepage mockup, or "" when
// the brief has no design-aesthetics subsection or generation fails. It never
// returns an error: a missing preview must not affect the pipeline.
func (im *Imager) PreviewImage(ctx context.Context, brief json.RawMessage) string {
	if im.gen == nil || len(brief) == 0 {
		return ""
	}

	var doc struct {
		DesignAesthetics *designAesthetics `json:"designAesthetics"`
	}
	if err := json.Unmarshal(brief, &doc); err != nil {
		im.logger.Warn("content brief is not valid JSON, skipping preview image", "error", err)
		return ""
	}
	if doc.DesignAesthetics == nil {
		im.logger.Debug("content brief has no design aesthetics, skipping preview image")
		return ""
	}

	prompt := buildImagePrompt(doc.DesignAesthetics)
	mimeType, data, err := im.gen.GenerateImage(ctx, prompt)
	if err != nil {
		im.logger.Warn("preview image generation failed", "error", err)
		return ""
	}
	if len(data) == 0 {
		im.logger.Warn("preview image generation returned no data")
		return ""
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func buildImagePrompt(d *designAesthetics) string {
	var b strings.Builder
	b.WriteString("High-fidelity mockup of a modern website homepage, full-page screenshot, no browser chrome.")
	if d.Tone != "" {
		fmt.Fprintf(&b, " Overall tone: %s.", d.Tone)
	}
	if d.VisualInspiration != "" {
		fmt.Fprintf(&b, " Visual inspiration: %s.", d.VisualInspiration)
	}
	if len(d.ColorPalette) > 0 {
		colors := make([]string, 0, len(d.ColorPalette))
		for _, c := range d.ColorPalette {
			switch {
			case c.Name != "" && c.Hex != "":
				colors = append(colors, fmt.Sprintf("%s (%s)", c.Name, c.Hex))
			case c.Hex != "":
				colors = append(colors, c.Hex)
			case c.Name != "":
				colors = append(colors, c.Name)
			}
		}
		if len(colors) > 0 {
			fmt.Fprintf(&b, " Color palette: %s.", strings.Join(colors, ", "))
		}
	}
	return b.String()
}
