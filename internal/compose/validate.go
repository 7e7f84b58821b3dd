package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

var ErrInvalidCompose = errors.New("некорректный docker-compose.yml")

// ValidationError описывает, почему compose-go отверг сгенерированный файл.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidCompose, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidCompose
}

// Validate загружает docker-compose.yml через compose-go и возвращает проект.
// env используется для интерполяции ${VAR}; обычно это содержимое .env сайта.
func Validate(ctx context.Context, projectName, content string, env map[string]string) (*types.Project, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Message: "пустой файл"}
	}

	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(content), &dict); err != nil {
		return nil, &ValidationError{Message: "некорректный YAML", Err: err}
	}
	if dict == nil {
		return nil, &ValidationError{Message: "некорректный YAML"}
	}

	mapping := types.Mapping{}
	for k, v := range env {
		mapping[k] = v
	}

	name := loader.NormalizeProjectName(projectName)
	if name == "" {
		name = "site"
	}

	project, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(content),
				Config:  dict,
			},
		},
		Environment: mapping,
	}, func(opts *loader.Options) {
		opts.SetProjectName(name, true)
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, &ValidationError{Message: err.Error(), Err: err}
	}

	return project, nil
}
