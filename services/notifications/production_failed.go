package notifications

import (
	_ "embed"
	"fmt"
	"html/template"
)

var (
	//go:embed templates/production_failed.gohtml
	productionFailedTemplateFS string
	productionFailedTemplate   = template.Must(template.New("production_failed").Parse(productionFailedTemplateFS))
)

type ProductionFailed struct {
	TitleID      string
	Stage        string
	ErrorMessage string
}

func (t ProductionFailed) Subject() string {
	return fmt.Sprintf("Production failed: %s", t.TitleID)
}

func (t ProductionFailed) RenderHTML() (string, error) {
	return renderHtmlTemplate(productionFailedTemplate, t)
}

func (t ProductionFailed) RenderMarkdown() (string, error) {
	return fmt.Sprintf("*Production failed: %s*\n\nStage: `%s`\n%s",
		t.TitleID, t.Stage, t.ErrorMessage), nil
}
