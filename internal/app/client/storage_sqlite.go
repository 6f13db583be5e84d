package client

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"parsedash/internal/domain/profile"
	"parsedash/internal/domain/snippet"
	"parsedash/internal/infrastructure/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// secretSealer шифрует мастер-ключи перед записью в базу
type secretSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// SQLiteStorage хранит профили серверов и сниппеты облачных функций
type SQLiteStorage struct {
	db     *sql.DB
	sealer secretSealer
}

var (
	_ profile.Repository = (*SQLiteStorage)(nil)
	_ snippet.Repository = (*snippetStore)(nil)
)

func NewSQLiteStorage(path string, sealer secretSealer) (*SQLiteStorage, error) {
	if sealer == nil {
		return nil, fmt.Errorf("sealer не задан")
	}

	if err := migration.NewMigration(migrationsFS, "migrations", "sqlite3://"+path, nil).Up(); err != nil {
		return nil, fmt.Errorf("ошибка миграции базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	return &SQLiteStorage{db: db, sealer: sealer}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Snippets возвращает репозиторий сниппетов поверх той же базы
func (s *SQLiteStorage) Snippets() snippet.Repository {
	return &snippetStore{db: s.db}
}

func (s *SQLiteStorage) Create(ctx context.Context, p *profile.Profile) (int64, error) {
	sealed, err := s.sealer.Seal(p.MasterKey)
	if err != nil {
		return 0, fmt.Errorf("ошибка шифрования мастер-ключа: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (name, app_id, master_key, server_url, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.AppID, sealed, p.ServerURL, p.Icon, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, profile.ErrDuplicate
		}
		return 0, fmt.Errorf("ошибка сохранения профиля: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения id профиля: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return id, nil
}

func (s *SQLiteStorage) Update(ctx context.Context, p *profile.Profile) error {
	sealed, err := s.sealer.Seal(p.MasterKey)
	if err != nil {
		return fmt.Errorf("ошибка шифрования мастер-ключа: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = ?, app_id = ?, master_key = ?, server_url = ?, icon = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.AppID, sealed, p.ServerURL, p.Icon, now, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrDuplicate
		}
		return fmt.Errorf("ошибка обновления профиля: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return profile.ErrNotFound
	}

	p.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) GetByName(ctx context.Context, name string) (*profile.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, app_id, master_key, server_url, icon, created_at, updated_at
		FROM profiles
		WHERE name = ?
	`, name)

	p, err := s.scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStorage) List(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, app_id, master_key, server_url, icon, created_at, updated_at
		FROM profiles
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile
	for rows.Next() {
		p, err := s.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения профилей: %w", err)
	}

	return profiles, nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("ошибка удаления профиля: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStorage) scanProfile(row rowScanner) (*profile.Profile, error) {
	var (
		p      profile.Profile
		sealed string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.AppID, &sealed, &p.ServerURL, &p.Icon, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка сканирования профиля: %w", err)
	}

	masterKey, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки мастер-ключа профиля %q: %w", p.Name, err)
	}
	p.MasterKey = masterKey

	return &p, nil
}

type snippetStore struct {
	db *sql.DB
}

func (s *snippetStore) Save(ctx context.Context, sn *snippet.Snippet) error {
	now := time.Now().UTC()
	params := sql.NullString{}
	if len(sn.Params) > 0 {
		params = sql.NullString{String: string(sn.Params), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snippets (profile_id, name, function, params, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (profile_id, name) DO UPDATE
		SET function = excluded.function, params = excluded.params, updated_at = excluded.updated_at
	`, sn.ProfileID, sn.Name, sn.Function, params, now)
	if err != nil {
		return fmt.Errorf("ошибка сохранения сниппета: %w", err)
	}

	sn.UpdatedAt = now
	return nil
}

func (s *snippetStore) Get(ctx context.Context, profileID int64, name string) (*snippet.Snippet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, name, function, params, updated_at
		FROM snippets
		WHERE profile_id = ? AND name = ?
	`, profileID, name)

	sn, err := scanSnippet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, snippet.ErrNotFound
	}
	return sn, err
}

func (s *snippetStore) List(ctx context.Context, profileID int64) ([]*snippet.Snippet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, name, function, params, updated_at
		FROM snippets
		WHERE profile_id = ?
		ORDER BY name
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var snippets []*snippet.Snippet
	for rows.Next() {
		sn, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, sn)
	}
	return snippets, rows.Err()
}

func (s *snippetStore) Delete(ctx context.Context, profileID int64, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE profile_id = ? AND name = ?`, profileID, name)
	if err != nil {
		return fmt.Errorf("ошибка удаления сниппета: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return snippet.ErrNotFound
	}
	return nil
}

func scanSnippet(row rowScanner) (*snippet.Snippet, error) {
	var (
		sn     snippet.Snippet
		params sql.NullString
	)
	if err := row.Scan(&sn.ID, &sn.ProfileID, &sn.Name, &sn.Function, &params, &sn.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка сканирования сниппета: %w", err)
	}
	if params.Valid {
		sn.Params = json.RawMessage(params.String)
	}
	return &sn, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
