package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/memegentino/backend/config"
	"github.com/memegentino/backend/internal/domain"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/api/notion"
	"github.com/memegentino/backend/pkg/logger"
	"github.com/memegentino/backend/pkg/router"
	"github.com/memegentino/backend/pkg/urlcache"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	notionEndpoint notion.IEndpoint
	urlCache       *urlcache.Cache

	userRepo        repository.UserRepository
	notionTokenRepo repository.NotionTokenRepository
	memeRepo        repository.MemeRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	workspaceDomain domain.WorkspaceDomain
	memeDomain      domain.MemeDomain
	templateDomain  domain.TemplateDomain
	proxyDomain     domain.ProxyDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Driver:   getEnv("DB_DRIVER", "mysql"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Database: getEnv("DB_NAME", "memegentino"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			Cert:         getEnv("SERVER_CERT", ""),
			Key:          getEnv("SERVER_KEY", ""),
			MaxLimit:     getEnvInt("API_MAX_LIMIT", 50),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 10),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     mustEnv("TOKEN_SECRET"),
				Expiration: getEnvDuration("TOKEN_EXPIRATION", 24*time.Hour),
			},
			SuccessURL: getEnv("AUTH_SUCCESS_URL", "/"),
			ErrorURL:   getEnv("AUTH_ERROR_URL", "/error"),
		},
		Session: config.SessionConfigs{
			Secret: mustEnv("SESSION_SECRET"),
			Name:   getEnv("SESSION_NAME", "memegentino_session"),
		},
		Notion: config.NotionConfigs{
			ClientID:         mustEnv("NOTION_CLIENT_ID"),
			ClientSecret:     mustEnv("NOTION_CLIENT_SECRET"),
			BaseURL:          mustEnv("NOTION_BASE_URL"),
			CallbackURL:      getEnv("NOTION_CALLBACK_URL", "http://localhost:8080/oauth2/callback"),
			Version:          getEnv("NOTION_VERSION", "2021-08-16"),
			Timeout:          getEnvDuration("NOTION_TIMEOUT", 30*time.Second),
			FileURLFreshness: getEnvDuration("NOTION_FILE_URL_FRESHNESS", 30*time.Minute),
		},
		Meme: config.MemeConfigs{
			MaxSize: getEnvInt("MEME_MAX_SIZE", 2*1024*1024),
			MaxEdge: getEnvInt("MEME_MAX_EDGE", 2000),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadEndpoint() {
	s.notionEndpoint = notion.New(s.configs.Notion)
	s.urlCache = urlcache.New(s.configs.Notion.FileURLFreshness)
}

func (s *srv) loadDatabase() {
	var dialector gorm.Dialector
	switch s.configs.Database.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       s.configs.Database.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		// For sqlite the database name is the file path.
		dialector = sqlite.Open(s.configs.Database.Database)
	default:
		log.Fatalf("unsupported database driver %s", s.configs.Database.Driver)
	}

	var err error
	s.db, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.notionTokenRepo = repository.NewNotionTokenRepository()
	s.memeRepo = repository.NewMemeRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.notionTokenRepo, s.notionEndpoint)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.notionTokenRepo)
	s.workspaceDomain = domain.NewWorkspaceDomain(s.notionTokenRepo)
	s.memeDomain = domain.NewMemeDomain(s.memeRepo, s.notionTokenRepo)
	s.templateDomain = domain.NewTemplateDomain(s.notionTokenRepo, s.notionEndpoint, s.urlCache)
	s.proxyDomain = domain.NewProxyDomain(s.notionTokenRepo, s.notionEndpoint)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func mustEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		log.Fatalf("missing required environment variable %s", key)
	}

	return value
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid value of %s: %v", key, err)
	}

	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid value of %s: %v", key, err)
	}

	return parsed
}
