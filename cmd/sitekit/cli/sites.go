package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Показывает сгенерированные сайты",
	Args:  cobra.NoArgs,
	Run:   runSites,
}

var sitesRmCmd = &cobra.Command{
	Use:   "rm [siteName]",
	Short: "Удаляет сайт из журнала (файлы на диске не трогаются)",
	Args:  cobra.ExactArgs(1),
	Run:   runSitesRm,
}

func init() {
	sitesCmd.AddCommand(sitesRmCmd)
	rootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, args []string) {
	if err := runSitesLogic(); err != nil {
		errorLog(os.Stderr, "\n❌ Ошибка выполнения 'sites': %v\n", err)
		os.Exit(1)
	}
}

func runSitesLogic() error {
	sm, err := openState()
	if err != nil {
		return err
	}
	defer sm.Close()

	sites, err := sm.GetSites()
	if err != nil {
		return err
	}

	if len(sites) == 0 {
		infoLog("Сгенерированных сайтов пока нет. Запустите 'sitekit generate'.\n")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SITE\tFEATURES\tDIR\tCREATED")
	for _, s := range sites {
		features := strings.Join(s.Features, ",")
		if features == "" {
			features = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.SiteName, features, s.OutputDir, s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runSitesRm(cmd *cobra.Command, args []string) {
	siteName := args[0]
	if err := runSitesRmLogic(siteName); err != nil {
		errorLog(os.Stderr, "\n❌ Ошибка выполнения 'sites rm': %v\n", err)
		os.Exit(1)
	}
	successLog("✅ Сайт '%s' удален из журнала.\n", siteName)
}

func runSitesRmLogic(siteName string) error {
	sm, err := openState()
	if err != nil {
		return err
	}
	defer sm.Close()

	return sm.RemoveSite(siteName)
}
