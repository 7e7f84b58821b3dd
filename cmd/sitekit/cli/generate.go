package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/waste3d/sitekit/cmd/sitekit/cli/helpers"
	"github.com/waste3d/sitekit/internal/site"
)

var (
	generateFeatures featureOptions
	generateTemplate string
)

var generateCmd = &cobra.Command{
	Use:   "generate [site.yaml...]",
	Short: "Генерирует docker-compose.yml и .env для сайтов",
	Long:  "Читает site.yaml (по умолчанию из текущей директории), собирает стек сайта и записывает docker-compose.yml и .env в директорию сайта. Несколько файлов обрабатываются параллельно.",
	Run:   runGenerate,
}

func init() {
	generateFeatures.register(generateCmd)
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Собственный шаблон docker-compose (text/template)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	if err := runGenerateLogic(cmd.Context(), args); err != nil {
		errorLog(os.Stderr, "\n❌ Ошибка выполнения 'generate': %v\n", err)
		os.Exit(1)
	}
	successLog("\n✅ Команда 'generate' успешно завершена.\n")
}

func runGenerateLogic(ctx context.Context, paths []string) error {
	defer flushMetrics()

	configs, err := helpers.LoadSiteConfigs(paths, generateFeatures.tokens())
	if err != nil {
		return err
	}

	sm, err := openState()
	if err != nil {
		return err
	}
	defer sm.Close()

	generator := site.NewGenerator(templatePath(generateTemplate), logger, site.WithRecorder(sm))

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Генерирую стек для %d сайт(ов)...", len(configs))
	s.Start()
	results, err := generator.GenerateAll(ctx, configs)
	s.Stop()
	if err != nil {
		return err
	}

	for _, res := range results {
		features := "нет"
		if len(res.Features) > 0 {
			parts := make([]string, len(res.Features))
			for i, f := range res.Features {
				parts[i] = string(f)
			}
			features = strings.Join(parts, ", ")
		}
		infoLog("Сайт '%s': %s\n", res.SiteName, res.ComposePath)
		infoLog("  сервисы: %s\n", strings.Join(res.Services, ", "))
		infoLog("  флаги:   %s\n", features)
	}
	return nil
}
