package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrSiteNotFound = errors.New("сайт не найден")

// Site — запись о сгенерированном стеке сайта.
type Site struct {
	ID            string
	SiteName      string
	OutputDir     string
	Features      []string
	ComposeSHA256 string
	CreatedAt     time.Time
}

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}
	// sqlite не любит параллельных писателей.
	db.SetMaxOpenConns(1)

	m := &Manager{db: db}

	if err := m.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать таблицы: %w", err)
	}
	return m, nil
}

func (m *Manager) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS sites (
		id text primary key,
		site_name text not null unique,
		output_dir text not null,
		features text not null, -- через запятую: "le,wpredis"
		compose_sha256 text not null,
		created_at datetime not null
	);
	`

	_, err := m.db.Exec(query)
	return err
}

// SaveSite сохраняет сайт, заменяя прежнюю запись с тем же именем.
func (m *Manager) SaveSite(site Site) (Site, error) {
	if site.ID == "" {
		site.ID = uuid.NewString()
	}
	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now().UTC()
	}

	query := `insert or replace into sites (id, site_name, output_dir, features, compose_sha256, created_at) values (?, ?, ?, ?, ?, ?)`
	_, err := m.db.Exec(query, site.ID, site.SiteName, site.OutputDir, strings.Join(site.Features, ","), site.ComposeSHA256, site.CreatedAt)
	if err != nil {
		return Site{}, fmt.Errorf("не удалось сохранить сайт '%s': %w", site.SiteName, err)
	}
	return site, nil
}

func (m *Manager) GetSites() ([]Site, error) {
	query := "SELECT id, site_name, output_dir, features, compose_sha256, created_at FROM sites ORDER BY site_name"
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить сайты: %w", err)
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

func (m *Manager) GetSite(siteName string) (Site, error) {
	query := "SELECT id, site_name, output_dir, features, compose_sha256, created_at FROM sites WHERE site_name = ?"
	s, err := scanSite(m.db.QueryRow(query, siteName))
	if errors.Is(err, sql.ErrNoRows) {
		return Site{}, fmt.Errorf("%w: '%s'", ErrSiteNotFound, siteName)
	}
	return s, err
}

func (m *Manager) RemoveSite(siteName string) error {
	query := "DELETE FROM sites WHERE site_name = ?"
	res, err := m.db.Exec(query, siteName)
	if err != nil {
		return fmt.Errorf("не удалось удалить сайт: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: '%s'", ErrSiteNotFound, siteName)
	}
	return nil
}

func (m *Manager) Close() {
	m.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSite(row scanner) (Site, error) {
	var s Site
	var features string
	if err := row.Scan(&s.ID, &s.SiteName, &s.OutputDir, &features, &s.ComposeSHA256, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Site{}, err
		}
		return Site{}, fmt.Errorf("ошибка сканирования строки сайта: %w", err)
	}
	if features != "" {
		s.Features = strings.Split(features, ",")
	}
	return s, nil
}
