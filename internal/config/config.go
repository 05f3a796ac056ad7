package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定。
// main.goで一度だけ読み込み、必要な部品へ渡す（グローバル参照はしない）。
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あれば最優先で使う
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	JWTSecret string // JWT署名シークレット

	BaseURL   string // 画像URLの組み立てに使う（http://localhost:8080）
	UploadDir string // 画像の保存先（public/uploads）

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	LogLevel string // info/warn/error
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getenv("POSTGRES_PORT", "5432"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		BaseURL:   getenv("BASE_URL", "http://localhost:8080"),
		UploadDir: getenv("UPLOAD_DIR", "public/uploads"),

		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		CheckoutSuccessURL: getenv("CHECKOUT_SUCCESS_URL", "http://localhost:8080/checkout/success"),
		CheckoutCancelURL:  getenv("CHECKOUT_CANCEL_URL", "http://localhost:8080/checkout/cancel"),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
