package report

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownToHTML converts a Markdown document into an HTML fragment.
func MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := markdownConverter.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// templateData holds the values of the {{name}} placeholders of an HTML template.
type templateData struct {
	Title        string
	Repository   string
	Branch       string
	Total        int
	Passed       int
	Failed       int
	Skipped      int
	Errors       int
	Duration     string
	Timestamp    string
	ActionURL    string
	CommitSha    string
	CommitAuthor string
	Status       string
	IsPassed     bool
	Content      template.HTML
}

// substitute replaces the {{name}} placeholders of an externally supplied template.
func substitute(htmlTemplate string, data templateData) string {
	replacer := strings.NewReplacer(
		"{{title}}", data.Title,
		"{{repository}}", data.Repository,
		"{{branch}}", data.Branch,
		"{{total}}", strconv.Itoa(data.Total),
		"{{passed}}", strconv.Itoa(data.Passed),
		"{{failed}}", strconv.Itoa(data.Failed),
		"{{skipped}}", strconv.Itoa(data.Skipped),
		"{{errors}}", strconv.Itoa(data.Errors),
		"{{duration}}", data.Duration,
		"{{timestamp}}", data.Timestamp,
		"{{actionUrl}}", data.ActionURL,
		"{{commitSha}}", data.CommitSha,
		"{{commitAuthor}}", data.CommitAuthor,
		"{{status}}", data.Status,
		"{{content}}", string(data.Content),
	)
	return replacer.Replace(htmlTemplate)
}

var fallbackTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        .status { padding: 15px; border-radius: 5px; margin: 20px 0; text-align: center; font-weight: bold; }
        .passed { background-color: #d4edda; color: #155724; }
        .failed { background-color: #f8d7da; color: #721c24; }
        .summary { background-color: #f8f9fa; padding: 20px; border-radius: 5px; }
        pre { background-color: #f8f9fa; padding: 10px; border-radius: 3px; overflow-x: auto; }
        table { border-collapse: collapse; }
        th, td { border: 1px solid #dee2e6; padding: 4px 8px; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    {{if .IsPassed}}<div class="status passed">✅ All Tests Passed</div>{{else}}<div class="status failed">❌ Tests Failed</div>{{end}}
    <div class="summary">
        {{.Content}}
    </div>
</body>
</html>
`))

func renderFallbackHTML(data templateData) (string, error) {
	var buf bytes.Buffer
	if err := fallbackTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
