package compose

const (
	ServiceRedis      = "redis"
	ServiceDB         = "db"
	ServicePHP        = "php"
	ServiceNginx      = "nginx"
	ServiceMail       = "mail"
	ServicePHPMyAdmin = "phpmyadmin"

	restartAlways = "always"
	siteNetwork   = "site-network"

	// wildcardHost — правило маршрутизации для любого поддомена сайта.
	wildcardHost = "${VIRTUAL_HOST},HostRegexp:{subdomain:.+}.${VIRTUAL_HOST}"
)

// Build собирает описание стека сайта по набору флагов.
// Функция чистая: одинаковые флаги дают одинаковый результат.
func Build(flags Flags) Binding {
	var services []Service

	if flags.Has(FeatureRedis) {
		services = append(services, redisService())
	}

	services = append(services,
		dbService(),
		phpService(),
		nginxService(flags),
		mailService(),
		phpMyAdminService(),
	)

	return Binding{
		Services: services,
		Network:  true,
	}
}

func dbService() Service {
	return Service{
		Name:    ServiceDB,
		Image:   "easyengine/mariadb",
		Restart: restartAlways,
		Volumes: []string{"./app/db:/var/lib/mysql"},
		Environment: []EnvVar{
			{Key: "MYSQL_ROOT_PASSWORD"},
			{Key: "MYSQL_DATABASE"},
			{Key: "MYSQL_USER"},
			{Key: "MYSQL_PASSWORD"},
		},
		Network: siteNetwork,
	}
}

func phpService() Service {
	return Service{
		Name:      ServicePHP,
		Image:     "easyengine/php",
		Restart:   restartAlways,
		DependsOn: ServiceDB,
		Volumes: []string{
			"./app/src:/var/www/html",
			"./config/php-fpm/php.ini:/usr/local/etc/php/php.ini",
		},
		Environment: []EnvVar{
			{Key: "WORDPRESS_DB_HOST"},
			{Key: "WORDPRESS_DB_USER", Value: "${MYSQL_USER}"},
			{Key: "WORDPRESS_DB_PASSWORD", Value: "${MYSQL_PASSWORD}"},
			{Key: "USER_ID", Value: "${USER_ID}"},
			{Key: "GROUP_ID", Value: "${GROUP_ID}"},
		},
		Network: siteNetwork,
	}
}

func nginxService(flags Flags) Service {
	return Service{
		Name:      ServiceNginx,
		Image:     "easyengine/nginx",
		Restart:   restartAlways,
		DependsOn: ServicePHP,
		Volumes: []string{
			"./app/src:/var/www/html",
			"./config/nginx/default.conf:/etc/nginx/conf.d/default.conf",
			"./logs/nginx:/var/log/nginx",
			"./config/nginx/common:/usr/local/openresty/nginx/conf/common",
		},
		Environment: nginxEnvironment(flags),
		Network:     siteNetwork,
	}
}

// nginxEnvironment выбирает один из четырех наборов переменных
// в зависимости от le и wpsubdom.
func nginxEnvironment(flags Flags) []EnvVar {
	virtualHost := EnvVar{Key: "VIRTUAL_HOST"}
	certHost := EnvVar{Key: "LETSENCRYPT_HOST", Value: "${VIRTUAL_HOST}"}
	if flags.Has(FeatureSubdomains) {
		virtualHost.Value = wildcardHost
		certHost.Value = wildcardHost
	}

	if !flags.Has(FeatureLetsEncrypt) {
		return []EnvVar{virtualHost}
	}
	return []EnvVar{
		virtualHost,
		certHost,
		{Key: "LETSENCRYPT_EMAIL", Value: "${VIRTUAL_HOST_EMAIL}"},
	}
}

func mailService() Service {
	return Service{
		Name:    ServiceMail,
		Image:   "easyengine/mail",
		Restart: restartAlways,
		Command: []string{"-invite-jim=false"},
		Environment: []EnvVar{
			{Key: "VIRTUAL_HOST", Value: "mail.${VIRTUAL_HOST}"},
			{Key: "VIRTUAL_PORT", Value: "8025"},
		},
		Network: siteNetwork,
	}
}

func phpMyAdminService() Service {
	return Service{
		Name:    ServicePHPMyAdmin,
		Image:   "easyengine/phpmyadmin",
		Restart: restartAlways,
		Environment: []EnvVar{
			{Key: "VIRTUAL_HOST", Value: "pma.${VIRTUAL_HOST}"},
		},
		Network: siteNetwork,
	}
}

// У redis нет restart-политики.
func redisService() Service {
	return Service{
		Name:    ServiceRedis,
		Image:   "easyengine/redis",
		Network: siteNetwork,
	}
}
