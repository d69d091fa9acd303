package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`

	AccessSecret  string `mapstructure:"ACCESS_SECRET"`
	RefreshSecret string `mapstructure:"REFRESH_SECRET"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// Хранилище сертификатов: если GCS_BUCKET пуст, пишем на диск в CERT_DIR.
	GCSBucket     string `mapstructure:"GCS_BUCKET"`
	CertDir       string `mapstructure:"CERT_DIR"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
	CertFont      string `mapstructure:"CERT_FONT"`

	SendgridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	SMTPEmail      string `mapstructure:"SMTP_EMAIL"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// Явно биндим переменные, чтобы Viper их видел без файла
	viper.BindEnv("APP_ENV")
	viper.BindEnv("HTTP_PORT")
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("ACCESS_SECRET")
	viper.BindEnv("REFRESH_SECRET")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("GCS_BUCKET")
	viper.BindEnv("CERT_DIR")
	viper.BindEnv("PUBLIC_BASE_URL")
	viper.BindEnv("CERT_FONT")
	viper.BindEnv("SENDGRID_API_KEY")
	viper.BindEnv("SMTP_EMAIL")
	viper.BindEnv("FRONTEND_URL")

	viper.SetDefault("HTTP_PORT", ":8080")
	viper.SetDefault("CERT_DIR", "./data/certificates")

	// Пытаемся прочитать файл, но не умираем, если его нет
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Файла нет — работаем на ENV
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
