package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderHTML produces a self-contained printable page for a report: the
// markdown converted to HTML, a lead/tier header, and inlined styling so the
// page needs no further assets.
func RenderHTML(r *core.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(r.Markdown), &body); err != nil {
		return nil, fmt.Errorf("converting report markdown: %w", err)
	}

	data := struct {
		Title   string
		Lead    core.LeadInfo
		Tier    core.Tier
		HasTier bool
		Body    template.HTML
		Created string
	}{
		Title:   "AI Maturity Report",
		Lead:    r.Lead,
		Tier:    r.Tier,
		HasTier: r.Tier.Known(),
		Body:    template.HTML(body.String()),
		Created: r.CreatedAt.Format("January 2, 2006"),
	}

	var page bytes.Buffer
	if err := htmlPageTemplate.Execute(&page, data); err != nil {
		return nil, fmt.Errorf("rendering report page: %w", err)
	}
	return page.Bytes(), nil
}

var htmlPageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}{{if .Lead.Company}} — {{.Lead.Company}}{{end}}</title>
<style>
  body { font-family: Georgia, "Times New Roman", serif; color: #1a202c; max-width: 50rem; margin: 2rem auto; padding: 0 1.5rem; line-height: 1.6; }
  header { border-bottom: 3px solid #2b6cb0; padding-bottom: 1rem; margin-bottom: 2rem; }
  header h1 { margin: 0 0 .25rem; font-size: 1.8rem; }
  header .meta { color: #4a5568; font-size: .95rem; }
  .tier-badge { display: inline-block; background: #2b6cb0; color: #fff; border-radius: 999px; padding: .2rem .9rem; font-family: Helvetica, Arial, sans-serif; font-size: .85rem; letter-spacing: .05em; text-transform: uppercase; }
  h2 { font-size: 1.3rem; border-bottom: 1px solid #e2e8f0; padding-bottom: .3rem; margin-top: 2rem; }
  li { margin: .3rem 0; }
  @media print { body { margin: 0; } .tier-badge { border: 1px solid #2b6cb0; color: #2b6cb0; background: none; } }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <div class="meta">
    {{if .Lead.Name}}Prepared for {{.Lead.Name}}{{if .Lead.Company}}, {{.Lead.Company}}{{end}}{{if .Lead.Industry}} ({{.Lead.Industry}}){{end}} &middot; {{end}}{{.Created}}
    {{if .HasTier}}<span class="tier-badge">{{.Tier}}</span>{{end}}
  </div>
</header>
<main>
{{.Body}}
</main>
</body>
</html>
`))
