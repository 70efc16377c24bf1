package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// The service runs in ephemeral containers; keep pdfcpu's config
	// in memory instead of writing a config dir.
	api.DisableConfigDir()
}

// StampInfo identifies the viewer a lesson document is being rendered for.
type StampInfo struct {
	ViewerName   string
	EnrollmentID string
	GeneratedAt  time.Time
}

// Overlay descriptors. Light, semi-transparent, legible as a forensic trace
// without obstructing the underlying content.
const (
	centerStampDesc = "fontname:Helvetica, points:32, color:.6 .66 .78, rotation:45, opacity:.18, position:c"
	footerStampDesc = "fontname:Helvetica, points:8, color:.6 .66 .78, rotation:0, opacity:.3, position:bl, offset:12 12"
)

func watermarkConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// CenterStampText builds the diagonal per-viewer stamp applied near the
// page center of every page.
func CenterStampText(info StampInfo) string {
	return fmt.Sprintf("%s - %s - %s",
		info.ViewerName, info.EnrollmentID, info.GeneratedAt.UTC().Format(time.RFC3339))
}

// FooterStampText builds the small bottom-left stamp: a truncated
// enrollment identifier.
func FooterStampText(info StampInfo) string {
	id := info.EnrollmentID
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// PageCount parses the document and returns its page count. A parse failure
// means the stored object is not a usable PDF.
func PageCount(data []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), watermarkConf())
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("failed to validate PDF: %w", err)
	}
	return ctx.PageCount, nil
}

// WatermarkLessonPDF stamps every page of src with the viewer-identifying
// center overlay and the truncated-enrollment footer overlay, and returns
// the re-saved document. src is never modified.
func WatermarkLessonPDF(src []byte, info StampInfo) ([]byte, error) {
	conf := watermarkConf()

	center, err := api.TextWatermark(CenterStampText(info), centerStampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to build center stamp: %w", err)
	}
	footer, err := api.TextWatermark(FooterStampText(info), footerStampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to build footer stamp: %w", err)
	}

	var centered bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(src), &centered, nil, center, conf); err != nil {
		return nil, fmt.Errorf("failed to apply center stamp: %w", err)
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(centered.Bytes()), &out, nil, footer, conf); err != nil {
		return nil, fmt.Errorf("failed to apply footer stamp: %w", err)
	}

	return out.Bytes(), nil
}
