package compose

import (
	"errors"
	"fmt"
)

var ErrServiceOrder = errors.New("нарушен порядок сервисов")

// Sort упорядочивает сервисы так, чтобы каждая зависимость шла раньше зависимого.
// Среди независимых сервисов сохраняется исходный порядок.
func Sort(services []Service) ([]Service, error) {
	serviceMap := make(map[string]Service, len(services))
	for _, svc := range services {
		serviceMap[svc.Name] = svc
	}

	var sorted []Service
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		svc, ok := serviceMap[name]
		if !ok {
			return fmt.Errorf("обнаружена зависимость от несуществующего сервиса: '%s'", name)
		}

		if recursionStack[name] {
			return fmt.Errorf("обнаружен цикл зависимостей: '%s'", name)
		}

		if visited[name] {
			return nil
		}

		visited[name] = true
		recursionStack[name] = true

		if svc.DependsOn != "" {
			if err := visit(svc.DependsOn); err != nil {
				return err
			}
		}
		delete(recursionStack, name)
		sorted = append(sorted, svc)
		return nil
	}

	for _, svc := range services {
		if err := visit(svc.Name); err != nil {
			return nil, err
		}
	}

	return sorted, nil
}

// CheckOrder проверяет, что каждый сервис объявлен после своей зависимости.
// Неизвестные зависимости, циклы и повторные имена тоже считаются нарушением порядка.
func CheckOrder(services []Service) error {
	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		if seen[svc.Name] {
			return fmt.Errorf("%w: сервис '%s' объявлен дважды", ErrServiceOrder, svc.Name)
		}
		seen[svc.Name] = true
	}

	sorted, err := Sort(services)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServiceOrder, err)
	}

	// Для корректно упорядоченного списка Sort возвращает его без изменений.
	for i, svc := range services {
		if sorted[i].Name != svc.Name {
			return fmt.Errorf("%w: '%s' объявлен раньше зависимости '%s'", ErrServiceOrder, svc.Name, svc.DependsOn)
		}
	}
	return nil
}
