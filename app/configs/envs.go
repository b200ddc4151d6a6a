package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string

	JWTSecret                string
	JWTAlgorithm             string
	AccessTokenExpireMinutes string
	RefreshTokenExpireDays   string
	ResetTokenExpireMinutes  string

	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string

	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string

	MidtransServerKey string
	MidtransClientKey string

	AppURL   string
	AppEnv   string
	LogLevel string
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Warn("no .env file found, relying on process environment")
	}

	return ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		Port:       os.Getenv("APP_PORT"),

		JWTSecret:                os.Getenv("SECRET_KEY"),
		JWTAlgorithm:             os.Getenv("ALGORITHM"),
		AccessTokenExpireMinutes: os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"),
		RefreshTokenExpireDays:   os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"),
		ResetTokenExpireMinutes:  os.Getenv("RESET_TOKEN_EXPIRE_MINUTES"),

		EmailHost:     os.Getenv("SMTP_SERVER"),
		EmailPort:     os.Getenv("SMTP_PORT"),
		EmailUsername: os.Getenv("SMTP_USERNAME"),
		EmailPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:     os.Getenv("SENDER_EMAIL"),

		S3Region:        os.Getenv("S3_REGION"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),

		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),

		AppURL:   os.Getenv("APP_URL"),
		AppEnv:   os.Getenv("APP_ENV"),
		LogLevel: os.Getenv("LOG_LEVEL"),
	}
}

func durationFromEnv(raw string, unit time.Duration, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logrus.Warnf("invalid duration value %q, using default", raw)
		return fallback
	}
	return time.Duration(n) * unit
}

func (e ENV) AccessTokenTTL() time.Duration {
	return durationFromEnv(e.AccessTokenExpireMinutes, time.Minute, 15*time.Minute)
}

func (e ENV) RefreshTokenTTL() time.Duration {
	return durationFromEnv(e.RefreshTokenExpireDays, 24*time.Hour, 7*24*time.Hour)
}

func (e ENV) ResetTokenTTL() time.Duration {
	return durationFromEnv(e.ResetTokenExpireMinutes, time.Minute, 15*time.Minute)
}
