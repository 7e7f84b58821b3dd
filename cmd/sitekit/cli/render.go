package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/waste3d/sitekit/internal/compose"
)

var (
	renderFeatures featureOptions
	renderTemplate string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Печатает docker-compose.yml для заданных флагов",
	Long:  "Собирает стек по флагам --le, --wpsubdom, --wpredis и выводит docker-compose.yml без site.yaml и без записи .env.",
	Args:  cobra.NoArgs,
	Run:   runRender,
}

func init() {
	renderFeatures.register(renderCmd)
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "Собственный шаблон docker-compose (text/template)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Записать результат в файл вместо stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	if err := runRenderLogic(); err != nil {
		errorLog(os.Stderr, "\n❌ Ошибка выполнения 'render': %v\n", err)
		os.Exit(1)
	}
}

func runRenderLogic() error {
	flags := compose.NewFlags(renderFeatures.tokens()...)
	logger.Debug("рендеринг стека", "features", flags.List())

	out, err := compose.Generate(templatePath(renderTemplate), flags)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(renderOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("не удалось записать %s: %w", renderOutput, err)
	}
	successLog("✅ %s записан.\n", renderOutput)
	return nil
}
