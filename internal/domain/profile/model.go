package profile

import "time"

// Profile - сохраненное подключение к серверу
type Profile struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	AppID     string    `json:"app_id" yaml:"app_id"`
	MasterKey string    `json:"-" yaml:"-"`
	ServerURL string    `json:"server_url" yaml:"server_url"`
	Icon      []byte    `json:"icon,omitempty" yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Credentials - то, что нужно клиенту запросов
type Credentials struct {
	ServerURL string
	AppID     string
	MasterKey string
}

func (p *Profile) Credentials() Credentials {
	return Credentials{
		ServerURL: p.ServerURL,
		AppID:     p.AppID,
		MasterKey: p.MasterKey,
	}
}
