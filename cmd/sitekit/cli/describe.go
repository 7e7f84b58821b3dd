package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/waste3d/sitekit/internal/compose"
)

var describeFeatures featureOptions

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Показывает состав стека для заданных флагов",
	Args:  cobra.NoArgs,
	Run:   runDescribe,
}

func init() {
	describeFeatures.register(describeCmd)
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) {
	flags := compose.NewFlags(describeFeatures.tokens()...)
	doc := stackMarkdown(flags, compose.Build(flags))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(doc)
		return
	}

	out, err := renderer.Render(doc)
	if err != nil {
		fmt.Println(doc)
	} else {
		fmt.Print(out)
	}
}

// stackMarkdown описывает стек в markdown: таблица сервисов и их окружение.
func stackMarkdown(flags compose.Flags, b compose.Binding) string {
	var sb strings.Builder

	sb.WriteString("# Стек сайта\n\n")
	if list := flags.List(); len(list) > 0 {
		parts := make([]string, len(list))
		for i, f := range list {
			parts[i] = "`" + string(f) + "`"
		}
		fmt.Fprintf(&sb, "Флаги: %s\n\n", strings.Join(parts, ", "))
	} else {
		sb.WriteString("Флаги: нет\n\n")
	}

	sb.WriteString("| Сервис | Образ | Зависит от | Restart |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, svc := range b.Services {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", svc.Name, svc.Image, orDash(svc.DependsOn), orDash(svc.Restart))
	}

	for _, svc := range b.Services {
		if len(svc.Environment) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", svc.Name)
		for _, env := range svc.Environment {
			fmt.Fprintf(&sb, "- `%s`\n", env.String())
		}
	}

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
