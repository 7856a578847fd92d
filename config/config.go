package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Notion    NotionConfigs
	Meme      MemeConfigs
}

type DatabaseConfigs struct {
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	MaxLimit     int
	DefaultLimit int
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type AuthConfigs struct {
	AccessToken TokenConfigs

	SuccessURL string
	ErrorURL   string
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

// NotionConfigs holds the provider-side OAuth application settings. All of
// ClientID, ClientSecret, and BaseURL are required for the exchange and the
// proxy to function at all, so their absence is a startup error.
type NotionConfigs struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	CallbackURL  string
	Version      string

	// Timeout applies to every outbound call, including proxied ones. A
	// timed-out call is reported as a proxy concern, not a downstream one.
	Timeout time.Duration

	// FileURLFreshness is how long a rewritten downstream file URL keeps a
	// stable identity in the url cache.
	FileURLFreshness time.Duration
}

type MemeConfigs struct {
	// MaxSize limits the decoded artifact payload in bytes.
	MaxSize int

	// MaxEdge is the largest allowed pixel dimension. Bigger images are
	// downscaled on create.
	MaxEdge int
}
