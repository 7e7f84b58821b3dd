package compose

// Feature — токен флага, управляющего составом стека.
type Feature string

const (
	// FeatureLetsEncrypt включает выпуск TLS-сертификата для сайта.
	FeatureLetsEncrypt Feature = "le"
	// FeatureSubdomains включает маршрутизацию wildcard-поддоменов.
	FeatureSubdomains Feature = "wpsubdom"
	// FeatureRedis добавляет в стек сервис кеша.
	FeatureRedis Feature = "wpredis"
)

// KnownFeatures перечисляет все распознаваемые флаги в стабильном порядке.
var KnownFeatures = []Feature{FeatureLetsEncrypt, FeatureSubdomains, FeatureRedis}

// Flags — множество включенных флагов. Нераспознанные токены игнорируются.
type Flags map[Feature]struct{}

func NewFlags(tokens ...string) Flags {
	flags := make(Flags)
	for _, token := range tokens {
		for _, known := range KnownFeatures {
			if Feature(token) == known {
				flags[known] = struct{}{}
			}
		}
	}
	return flags
}

func (f Flags) Has(feature Feature) bool {
	_, ok := f[feature]
	return ok
}

// List возвращает включенные флаги в порядке KnownFeatures.
func (f Flags) List() []Feature {
	list := make([]Feature, 0, len(f))
	for _, known := range KnownFeatures {
		if f.Has(known) {
			list = append(list, known)
		}
	}
	return list
}

// EnvVar — переменная окружения сервиса. Пустое значение означает,
// что переменная пробрасывается из .env как есть.
type EnvVar struct {
	Key   string
	Value string
}

// String сериализует переменную в форму KEY=value (или KEY).
func (e EnvVar) String() string {
	if e.Value == "" {
		return e.Key
	}
	return e.Key + "=" + e.Value
}

// Service описывает один блок services в docker-compose.yml.
type Service struct {
	Name        string
	Image       string
	Restart     string
	DependsOn   string
	Command     []string
	Volumes     []string
	Environment []EnvVar
	Network     string
}

// Lookup возвращает значение переменной окружения сервиса.
func (s Service) Lookup(key string) (EnvVar, bool) {
	for _, env := range s.Environment {
		if env.Key == key {
			return env, true
		}
	}
	return EnvVar{}, false
}

// Binding — данные, передаваемые в шаблон docker-compose.
type Binding struct {
	Services []Service
	Network  bool
}

// NetworkNames возвращает уникальные сети сервисов в порядке появления.
// Пусто, если Network выключен.
func (b Binding) NetworkNames() []string {
	if !b.Network {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, svc := range b.Services {
		if svc.Network == "" || seen[svc.Network] {
			continue
		}
		seen[svc.Network] = true
		names = append(names, svc.Network)
	}
	return names
}

// Service возвращает сервис по имени.
func (b Binding) Service(name string) (Service, bool) {
	for _, svc := range b.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}

// Names возвращает имена сервисов в порядке вывода.
func (b Binding) Names() []string {
	names := make([]string, len(b.Services))
	for i, svc := range b.Services {
		names[i] = svc.Name
	}
	return names
}
