package profile

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	MaxNameLen  = 64
	MaxIconSize = 512 * 1024
)

// Validate проверяет профиль перед сохранением
func Validate(p *Profile) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidateServerURL(p.ServerURL); err != nil {
		return err
	}
	if strings.TrimSpace(p.AppID) == "" {
		return invalid("app_id", "application id is required")
	}
	if strings.TrimSpace(p.MasterKey) == "" {
		return invalid("master_key", "master key is required")
	}
	if len(p.Icon) > MaxIconSize {
		return invalid("icon", fmt.Sprintf("icon must be at most %d bytes", MaxIconSize))
	}
	return nil
}

// ValidateName валидирует отображаемое имя
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "name is required")
	}
	if len(name) > MaxNameLen {
		return invalid("name", fmt.Sprintf("name must be at most %d characters", MaxNameLen))
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return invalid("name", "name can only contain letters, digits, '_', '-', '.'")
		}
	}
	return nil
}

// ValidateServerURL требует абсолютный http(s) адрес с хостом
func ValidateServerURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return invalid("server_url", fmt.Sprintf("server url is malformed: %v", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("server_url", "server url must start with http:// or https://")
	}
	if u.Host == "" {
		return invalid("server_url", "server url must contain a host")
	}
	return nil
}

// NormalizeServerURL убирает пробелы и завершающий слеш
func NormalizeServerURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
