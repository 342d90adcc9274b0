package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port           string // HTTP listen port
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisURL       string // Optional; empty disables the read cache
	DBMaxOpenConns int    // Upper bound on the shared connection pool
	DBMaxIdleConns int
	BcryptCost     int // Password hashing work factor
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:           getEnv("PORT", "4000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		BcryptCost:     getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

// DatabaseURL builds the Postgres connection string. The database port
// is fixed at 5432.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"host=%s port=5432 user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
