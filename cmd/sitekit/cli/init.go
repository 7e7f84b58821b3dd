package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/waste3d/sitekit/cmd/sitekit/cli/helpers"
	"github.com/waste3d/sitekit/pkg/parser"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Генерация site.yaml на базе вопросов",
	Long:  "Задаёт вопросы пользователю и генерирует site.yaml для команды 'sitekit generate'.",
	Args:  cobra.NoArgs,
	Run:   runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Перезаписать существующий site.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	if err := runInitLogic(os.Stdin, os.Stdout, helpers.DefaultConfigPath, initForce); err != nil {
		errorLog(os.Stderr, "\n❌ Ошибка выполнения 'init': %v\n", err)
		os.Exit(1)
	}
	successLog("\n✅ %s создан. Запустите 'sitekit generate'.\n", helpers.DefaultConfigPath)
}

func runInitLogic(in io.Reader, out io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s уже существует, используйте --force для перезаписи", path)
	}

	answers := make(map[string]string)

	reader := bufio.NewReader(in)

	questions := []struct {
		key      string
		prompt   string
		defaultV string
	}{
		{"siteName", "Домен сайта", "example.test"},
		{"email", "Почта для Let's Encrypt (пусто - admin@<домен>)", ""},
		{"le", "Выпустить TLS-сертификат? (yes/no)", "no"},
		{"wpsubdom", "Включить wildcard-поддомены? (yes/no)", "no"},
		{"wpredis", "Добавить redis? (yes/no)", "no"},
	}

	for _, q := range questions {
		fmt.Fprintf(out, "%s [%s]: ", q.prompt, q.defaultV)
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("ошибка чтения ответа: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			text = q.defaultV
		}
		answers[q.key] = text
	}

	config := &parser.Config{
		Version:  parser.CurrentVersion,
		SiteName: answers["siteName"],
		Email:    answers["email"],
	}
	for _, feature := range []string{"le", "wpsubdom", "wpredis"} {
		if isYes(answers[feature]) {
			config.Features = append(config.Features, feature)
		}
	}

	if err := config.Validate(); err != nil {
		return err
	}

	content, err := parser.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("не удалось записать %s: %w", path, err)
	}
	return nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}
