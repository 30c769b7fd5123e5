package notifications

import (
	_ "embed"
	"fmt"
	"html/template"
)

var (
	//go:embed templates/production_completed.gohtml
	productionCompletedTemplateFS string
	productionCompletedTemplate   = template.Must(template.New("production_completed").Parse(productionCompletedTemplateFS))
)

type ProductionCompleted struct {
	TitleID         string
	OutputPath      string
	DurationSeconds float64
	FileSizeBytes   int64
	Notes           []string
}

func (t ProductionCompleted) Subject() string {
	return fmt.Sprintf("Production completed: %s", t.TitleID)
}

func (t ProductionCompleted) RenderHTML() (string, error) {
	return renderHtmlTemplate(productionCompletedTemplate, t)
}

func (t ProductionCompleted) RenderMarkdown() (string, error) {
	markdown := fmt.Sprintf("*Production completed: %s*\n\n`%s`\n%.1f seconds, %d bytes",
		t.TitleID, t.OutputPath, t.DurationSeconds, t.FileSizeBytes)
	for _, note := range t.Notes {
		markdown += "\n⚠️ " + note
	}
	return markdown, nil
}
