package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry — собственный реестр sitekit, без метрик рантайма Go.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	// Количество успешно сгенерированных стеков.
	SitesGenerated = factory.NewCounter(prometheus.CounterOpts{
		Name: "sitekit_sites_generated_total",
		Help: "The total number of site stacks generated by sitekit.",
	})

	// Сколько раз каждый флаг попадал в сгенерированный стек.
	FeatureEnabled = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "sitekit_feature_enabled_total",
		Help: "The number of generated stacks with a given feature enabled.",
	},
		[]string{"feature"},
	)

	GenerateErrors = factory.NewCounter(prometheus.CounterOpts{
		Name: "sitekit_generate_errors_total",
		Help: "The total number of failed site generations.",
	})
)

// WriteTextfile сохраняет метрики в формате textfile collector node-exporter.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
