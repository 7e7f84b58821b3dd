package helpers

import (
	"fmt"
	"path/filepath"

	"github.com/waste3d/sitekit/pkg/parser"
)

// DefaultConfigPath — site.yaml в текущей директории.
const DefaultConfigPath = "site.yaml"

// LoadSiteConfigs читает site.yaml по каждому пути и добавляет к ним
// features из командной строки. Без путей читается ./site.yaml.
func LoadSiteConfigs(paths []string, extraFeatures []string) ([]*parser.Config, error) {
	if len(paths) == 0 {
		paths = []string{DefaultConfigPath}
	}

	configs := make([]*parser.Config, 0, len(paths))
	seen := make(map[string]string)
	dirs := make(map[string]string)
	for _, path := range paths {
		config, err := parser.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%w. Пожалуйста, запустите 'sitekit init' или укажите путь к site.yaml явно", err)
		}

		if prev, ok := seen[config.SiteName]; ok {
			return nil, fmt.Errorf("сайт '%s' описан дважды: %s и %s", config.SiteName, prev, path)
		}
		seen[config.SiteName] = path

		dir, err := filepath.Abs(config.OutputDir())
		if err != nil {
			return nil, fmt.Errorf("не удалось определить директорию сайта '%s': %w", config.SiteName, err)
		}
		if prev, ok := dirs[dir]; ok {
			return nil, fmt.Errorf("сайты из %s и %s пишут в одну директорию %s", prev, path, dir)
		}
		dirs[dir] = path

		config.Features = MergeFeatures(config.Features, extraFeatures)
		configs = append(configs, config)
	}
	return configs, nil
}

// MergeFeatures объединяет списки без повторов, сохраняя порядок.
func MergeFeatures(base, extra []string) []string {
	merged := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool)
	for _, list := range [][]string{base, extra} {
		for _, f := range list {
			if seen[f] {
				continue
			}
			seen[f] = true
			merged = append(merged, f)
		}
	}
	return merged
}
