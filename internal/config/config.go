package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type AppConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DbConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
}

// ServicesConfig holds the base URLs of the five LBU backend services plus
// the shared outbound client timeout.
type ServicesConfig struct {
	AuthBaseURL    string
	CourseBaseURL  string
	StudentBaseURL string
	FinanceBaseURL string
	LibraryBaseURL string
	ClientTimeout  time.Duration
}

type SessionConfig struct {
	CookieName     string
	CookieDomain   string
	CookieSecure   bool
	CookieSamesite string
}

type Config struct {
	AppConfig      *AppConfig
	DbConfig       *DbConfig
	ServicesConfig *ServicesConfig
	SessionConfig  *SessionConfig
}

func LoadConfig(logger *zap.Logger) (*Config, error) {
	/** db config */
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is not set")
	}

	maxOpenConns, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS"))
	if err != nil {
		return nil, err
	}
	maxIdleConns, err := strconv.Atoi(os.Getenv("DB_MAX_IDLE_CONNS"))
	if err != nil {
		return nil, err
	}
	maxConnLifetime, err := time.ParseDuration(os.Getenv("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	dbConfig := &DbConfig{
		DSN:             dsn,
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		MaxConnLifetime: maxConnLifetime,
	}

	/** app config */
	readTimeout, err := time.ParseDuration(os.Getenv("APP_READ_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	writeTimeout, err := time.ParseDuration(os.Getenv("APP_WRITE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	idleTimeout, err := time.ParseDuration(os.Getenv("APP_IDLE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	appConfig := &AppConfig{
		Port:         os.Getenv("APP_PORT"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	/** backend services config */
	clientTimeout, err := time.ParseDuration(os.Getenv("BACKEND_CLIENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	servicesConfig := &ServicesConfig{
		AuthBaseURL:    os.Getenv("LBU_AUTH_BASE_URL"),
		CourseBaseURL:  os.Getenv("LBU_COURSE_BASE_URL"),
		StudentBaseURL: os.Getenv("LBU_STUDENT_BASE_URL"),
		FinanceBaseURL: os.Getenv("LBU_FINANCE_BASE_URL"),
		LibraryBaseURL: os.Getenv("LBU_LIBRARY_BASE_URL"),
		ClientTimeout:  clientTimeout,
	}
	for name, base := range map[string]string{
		"LBU_AUTH_BASE_URL":    servicesConfig.AuthBaseURL,
		"LBU_COURSE_BASE_URL":  servicesConfig.CourseBaseURL,
		"LBU_STUDENT_BASE_URL": servicesConfig.StudentBaseURL,
		"LBU_FINANCE_BASE_URL": servicesConfig.FinanceBaseURL,
		"LBU_LIBRARY_BASE_URL": servicesConfig.LibraryBaseURL,
	} {
		if base == "" {
			logger.Error("backend base URL is not set", zap.String("var", name))
			return nil, fmt.Errorf("%s is not set", name)
		}
	}

	/** session cookie config */
	cookieSecure := false
	if v := os.Getenv("SESSION_COOKIE_SECURE"); v != "" {
		cookieSecure, err = strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
	}
	cookieName := os.Getenv("SESSION_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "portal_sid"
	}
	sessionConfig := &SessionConfig{
		CookieName:     cookieName,
		CookieDomain:   os.Getenv("SESSION_COOKIE_DOMAIN"),
		CookieSecure:   cookieSecure,
		CookieSamesite: os.Getenv("SESSION_COOKIE_SAMESITE"),
	}

	return &Config{
		AppConfig:      appConfig,
		DbConfig:       dbConfig,
		ServicesConfig: servicesConfig,
		SessionConfig:  sessionConfig,
	}, nil
}
