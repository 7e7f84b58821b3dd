package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/waste3d/sitekit/internal/compose"
	"github.com/waste3d/sitekit/internal/config"
	"github.com/waste3d/sitekit/internal/state"
	"github.com/waste3d/sitekit/metrics"
)

const version = "v0.1.0"

var (
	infoLog    = color.New(color.FgYellow).Printf
	successLog = color.New(color.FgGreen).Printf
	errorLog   = color.New(color.FgRed).Fprintf
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sitekit",
	Short: "Sitekit - генератор локального docker-стека для сайта",
	Long: `Sitekit собирает docker-compose.yml и .env для одного сайта
	(база данных, PHP, nginx, почта, phpMyAdmin и, по желанию, redis).`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute запускает CLI и печатает ошибку, если команда завершилась неудачно.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		errorLog(rootCmd.ErrOrStderr(), "❌ %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Путь к файлу настроек sitekit (по умолчанию ~/.sitekit.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Уровень логирования: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	cfg = loaded
	logger = config.NewLogger(cfg.Log, os.Stderr)
	return nil
}

func openState() (*state.Manager, error) {
	sm, err := state.NewManager(cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации журнала сайтов: %w", err)
	}
	return sm, nil
}

// flushMetrics пишет метрики, если задан metrics.textfile. Ошибка не фатальна.
func flushMetrics() {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("не удалось записать метрики", "path", cfg.Metrics.Textfile, "error", err)
	}
}

// featureOptions — флаги командной строки, совпадающие с токенами compose.
type featureOptions struct {
	letsEncrypt bool
	subdomains  bool
	redis       bool
}

func (o *featureOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.letsEncrypt, string(compose.FeatureLetsEncrypt), false, "Выпустить TLS-сертификат Let's Encrypt")
	cmd.Flags().BoolVar(&o.subdomains, string(compose.FeatureSubdomains), false, "Маршрутизировать wildcard-поддомены сайта")
	cmd.Flags().BoolVar(&o.redis, string(compose.FeatureRedis), false, "Добавить сервис кеша redis")
}

func (o *featureOptions) tokens() []string {
	var tokens []string
	if o.letsEncrypt {
		tokens = append(tokens, string(compose.FeatureLetsEncrypt))
	}
	if o.subdomains {
		tokens = append(tokens, string(compose.FeatureSubdomains))
	}
	if o.redis {
		tokens = append(tokens, string(compose.FeatureRedis))
	}
	return tokens
}

// templatePath — путь из флага имеет приоритет над настройками.
func templatePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Template.Path
}
