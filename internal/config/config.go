package config

import (
	"flag"
	"os"
	"time"
)

// Config содержит конфигурацию приложения.
type Config struct {
	RunAddress  string
	DatabaseURI string

	JWTSecret       string
	TokenExpiration time.Duration

	// Учётные данные администратора, создаваемого при старте.
	AdminEmail    string
	AdminPassword string

	// Хранилище файлов: "local" или "s3".
	BlobDriver           string
	LocalUploadDir       string
	LocalUploadURLPrefix string
	S3Region             string
	S3Bucket             string
	S3PublicBaseURL      string

	// Метка дизайна по умолчанию, когда пользователь не загрузил свой.
	FallbackDesign string

	// Тайминги обеих рабочих областей.
	ToastTTL         time.Duration
	WizardCloseDelay time.Duration
	WizardSessionTTL time.Duration
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения.
// Приоритет: переменные окружения > флаги > значения по умолчанию.
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL")
	flag.StringVar(&cfg.BlobDriver, "s", "local", "драйвер хранилища файлов (local|s3)")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}
	if envDriver := os.Getenv("BLOB_DRIVER"); envDriver != "" {
		cfg.BlobDriver = envDriver
	}

	// JWT секрет
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "default-secret-change-in-production"
	}
	cfg.TokenExpiration = 24 * time.Hour

	// Администратор
	cfg.AdminEmail = envOr("ADMIN_EMAIL", "admin@tappit.local")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	// Хранилище файлов
	cfg.LocalUploadDir = envOr("LOCAL_UPLOAD_DIR", "./storage/uploads")
	cfg.LocalUploadURLPrefix = envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads")
	cfg.S3Region = os.Getenv("S3_REGION")
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")

	cfg.FallbackDesign = envOr("FALLBACK_DESIGN", "Standard")

	// Тайминги совпадают с исходным поведением интерфейса:
	// уведомление живёт 4 секунды, визард закрывается через 1.5 секунды после успеха.
	cfg.ToastTTL = 4 * time.Second
	cfg.WizardCloseDelay = 1500 * time.Millisecond
	cfg.WizardSessionTTL = 30 * time.Minute

	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
