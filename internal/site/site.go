// Package site превращает site.yaml в файлы локального стека:
// docker-compose.yml и .env в директории сайта.
package site

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/waste3d/sitekit/internal/compose"
	"github.com/waste3d/sitekit/internal/state"
	"github.com/waste3d/sitekit/metrics"
	"github.com/waste3d/sitekit/pkg/parser"
	"golang.org/x/sync/errgroup"
)

const (
	ComposeFile = "docker-compose.yml"
	EnvFile     = ".env"
)

// Recorder сохраняет сведения о сгенерированном сайте.
type Recorder interface {
	SaveSite(site state.Site) (state.Site, error)
}

// Result — итог генерации одного сайта.
type Result struct {
	SiteName    string
	OutputDir   string
	ComposePath string
	EnvPath     string
	Features    []compose.Feature
	Services    []string
	Checksum    string
}

type Generator struct {
	templatePath string
	recorder     Recorder
	logger       *slog.Logger
	password     PasswordFunc
}

type Option func(*Generator)

// WithRecorder включает запись сайтов в журнал.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithPasswordFunc подменяет генератор паролей.
func WithPasswordFunc(f PasswordFunc) Option {
	return func(g *Generator) { g.password = f }
}

func NewGenerator(templatePath string, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		templatePath: templatePath,
		logger:       logger,
		password:     randomPassword,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate пишет docker-compose.yml и .env для одного сайта.
// Ничего не пишется, если compose-go отверг результат.
func (g *Generator) Generate(ctx context.Context, cfg *parser.Config) (*Result, error) {
	res, err := g.generate(ctx, cfg)
	if err != nil {
		metrics.GenerateErrors.Inc()
		return nil, fmt.Errorf("сайт '%s': %w", cfg.SiteName, err)
	}
	return res, nil
}

func (g *Generator) generate(ctx context.Context, cfg *parser.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := g.logger.With("site", cfg.SiteName)
	outDir := cfg.OutputDir()

	flags := compose.NewFlags(cfg.Features...)
	binding := compose.Build(flags)
	logger.Debug("стек собран", "services", binding.Names(), "features", flags.List())

	content, err := compose.Render(g.templatePath, binding)
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(outDir, EnvFile)
	existing, err := readEnv(envPath)
	if err != nil {
		return nil, err
	}
	env, err := buildEnv(existing, cfg, g.password)
	if err != nil {
		return nil, err
	}

	project, err := compose.Validate(ctx, cfg.SiteName, content, env)
	if err != nil {
		return nil, err
	}
	logger.Debug("docker-compose.yml проверен", "project", project.Name)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", outDir, err)
	}

	composePath := filepath.Join(outDir, ComposeFile)
	if err := os.WriteFile(composePath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("не удалось записать %s: %w", composePath, err)
	}
	if err := os.WriteFile(envPath, []byte(formatEnv(env)), 0600); err != nil {
		return nil, fmt.Errorf("не удалось записать %s: %w", envPath, err)
	}

	sum := sha256.Sum256([]byte(content))
	res := &Result{
		SiteName:    cfg.SiteName,
		OutputDir:   outDir,
		ComposePath: composePath,
		EnvPath:     envPath,
		Features:    flags.List(),
		Services:    binding.Names(),
		Checksum:    hex.EncodeToString(sum[:]),
	}

	if g.recorder != nil {
		absDir, err := filepath.Abs(outDir)
		if err != nil {
			absDir = outDir
		}
		features := make([]string, len(res.Features))
		for i, f := range res.Features {
			features[i] = string(f)
		}
		if _, err := g.recorder.SaveSite(state.Site{
			SiteName:      cfg.SiteName,
			OutputDir:     absDir,
			Features:      features,
			ComposeSHA256: res.Checksum,
		}); err != nil {
			return nil, err
		}
	}

	metrics.SitesGenerated.Inc()
	for _, f := range res.Features {
		metrics.FeatureEnabled.WithLabelValues(string(f)).Inc()
	}
	logger.Info("стек сайта записан", "dir", outDir, "checksum", res.Checksum)

	return res, nil
}

// GenerateAll генерирует несколько сайтов параллельно.
// Результаты возвращаются в порядке cfgs; первая ошибка отменяет остальные.
func (g *Generator) GenerateAll(ctx context.Context, cfgs []*parser.Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		eg.Go(func() error {
			res, err := g.Generate(egCtx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
