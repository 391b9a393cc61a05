package notifier

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dipu67/analyzer/internal/types"
)

const reportTemplate = `*Opportunity Report*{{if .Name}} — {{.Name}}{{end}}

{{if .Result.Success}}*Category:* {{.Result.Analysis.Category}}
*Score:* {{.Result.Analysis.PotentialScore}}/10 {{if .Result.Analysis.HasOpportunity}}✅ opportunity{{else}}—{{end}}
*Type:* {{.Result.Analysis.OpportunityType}}
*Risk:* {{.Result.Analysis.RiskLevel}} | *Confidence:* {{.Result.Analysis.ConfidenceLevel}} | *Timeline:* {{.Result.Analysis.EstimatedTimeline}}

{{.Result.Analysis.Summary}}

*Key points:*
{{range .Result.Analysis.KeyPoints}}• {{.}}
{{end}}
*Action steps:*
{{range .Result.Analysis.ActionSteps}}• {{.}}
{{end}}{{if .Result.Analysis.MentionedEntities}}
*Mentioned:* {{range $i, $e := .Result.Analysis.MentionedEntities}}{{if $i}}, {{end}}{{$e}}{{end}}
{{end}}
_{{.Result.TotalPosts}} post(s) analyzed_{{else}}Analysis failed: {{.Result.Error}}{{end}}
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// reportData is the template data structure
type reportData struct {
	Name   string
	Result types.BatchResult
}

// BuildReportMessage renders one batch result as a Markdown chat message.
// Name labels the source watchlist and may be empty for ad-hoc runs.
func BuildReportMessage(name string, result types.BatchResult) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, reportData{Name: name, Result: result}); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
