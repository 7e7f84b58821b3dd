package site

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/dotenv"
	"github.com/waste3d/sitekit/pkg/parser"
)

// envKeys — переменные .env в порядке записи.
var envKeys = []string{
	"VIRTUAL_HOST",
	"VIRTUAL_HOST_EMAIL",
	"MYSQL_ROOT_PASSWORD",
	"MYSQL_DATABASE",
	"MYSQL_USER",
	"MYSQL_PASSWORD",
	"USER_ID",
	"GROUP_ID",
}

// PasswordFunc генерирует пароль базы данных.
type PasswordFunc func() (string, error)

func randomPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("не удалось сгенерировать пароль: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// readEnv читает существующий .env тем же парсером, что и docker compose.
// Отсутствие файла не ошибка.
func readEnv(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	defer f.Close()

	env, err := dotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}
	return env, nil
}

// buildEnv дополняет существующие значения недостающими.
// Пароли и прочие ключи, уже записанные в .env, не меняются.
func buildEnv(existing map[string]string, cfg *parser.Config, password PasswordFunc) (map[string]string, error) {
	env := make(map[string]string, len(existing)+len(envKeys))
	for k, v := range existing {
		env[k] = v
	}

	defaults := map[string]string{
		"VIRTUAL_HOST":       cfg.SiteName,
		"VIRTUAL_HOST_EMAIL": cfg.AdminEmail(),
		"MYSQL_DATABASE":     "wordpress",
		"MYSQL_USER":         "wordpress",
		"USER_ID":            strconv.Itoa(os.Getuid()),
		"GROUP_ID":           strconv.Itoa(os.Getgid()),
	}
	for k, v := range defaults {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}

	for _, k := range []string{"MYSQL_ROOT_PASSWORD", "MYSQL_PASSWORD"} {
		if _, ok := env[k]; ok {
			continue
		}
		p, err := password()
		if err != nil {
			return nil, err
		}
		env[k] = p
	}

	return env, nil
}

// quoteEnvValue оставляет значение как есть, если docker compose прочитает его
// буквально. Иначе значение берётся в двойные кавычки, а \ " $ и переводы
// строк экранируются.
func quoteEnvValue(v string) string {
	if !strings.ContainsAny(v, " \t\n\r#\"'$\\`") {
		return v
	}
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return `"` + r.Replace(v) + `"`
}

// formatEnv сериализует .env: сначала известные ключи, затем остальные по алфавиту.
func formatEnv(env map[string]string) string {
	var b strings.Builder
	written := make(map[string]bool)

	write := func(k string) {
		v, ok := env[k]
		if !ok || written[k] {
			return
		}
		written[k] = true
		fmt.Fprintf(&b, "%s=%s\n", k, quoteEnvValue(v))
	}

	for _, k := range envKeys {
		write(k)
	}

	extra := make([]string, 0, len(env))
	for k := range env {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		write(k)
	}
	return b.String()
}
