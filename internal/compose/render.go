package compose

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/docker-compose.tmpl
var defaultTemplate string

const defaultTemplateName = "docker-compose.tmpl"

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"quoteList": func(items []string) string {
		quoted := make([]string, len(items))
		for i, item := range items {
			quoted[i] = strconv.Quote(item)
		}
		return strings.Join(quoted, ", ")
	},
}

// Generate собирает стек по флагам и рендерит docker-compose.yml.
func Generate(templatePath string, flags Flags) (string, error) {
	return Render(templatePath, Build(flags))
}

// Render подставляет binding в шаблон docker-compose.
// Пустой templatePath означает встроенный шаблон.
func Render(templatePath string, b Binding) (string, error) {
	if err := CheckOrder(b.Services); err != nil {
		return "", err
	}

	tmpl, err := loadTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, b); err != nil {
		return "", fmt.Errorf("ошибка рендеринга шаблона %s: %w", tmpl.Name(), err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func loadTemplate(templatePath string) (*template.Template, error) {
	name, content := defaultTemplateName, defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения шаблона: %w", err)
		}
		name, content = filepath.Base(templatePath), string(raw)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблона %s: %w", name, err)
	}
	return tmpl, nil
}
