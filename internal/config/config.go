package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort                  string // Application port
	DBUser                   string // Database user
	DBPassword               string // Database password
	DBHost                   string // Database host
	DBPort                   string // Database port
	DBName                   string // Database name
	JWTSecret                string // JWT secret key
	JWTAlgorithm             string // JWT signing algorithm (HS256 by default)
	AccessTokenExpireMinutes int    // Access token lifetime in minutes
	RedisAddr                string // Redis server address
	RedisPass                string // Redis password
	RedisDB                  int    // Redis database number
	IsProd                   bool   // Is production environment
}

// LoadConfig loads configuration from environment variables.
// Called once at startup; the returned value is never mutated afterwards.
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	// Token lifetime defaults to 30 minutes when unset or invalid
	expireMinutes, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if err != nil || expireMinutes <= 0 {
		expireMinutes = 30
	}
	// Signing algorithm defaults to HS256
	algorithm := os.Getenv("JWT_ALGORITHM")
	if algorithm == "" {
		algorithm = "HS256"
	}
	return &Config{
		AppPort:                  os.Getenv("APP_PORT"),          // Application port
		DBUser:                   os.Getenv("DB_USER"),           // Database user
		DBPassword:               os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:                   os.Getenv("DB_HOST"),           // Database host
		DBPort:                   os.Getenv("DB_PORT"),           // Database port
		DBName:                   os.Getenv("DB_NAME"),           // Database name
		JWTSecret:                os.Getenv("JWT_SECRET"),        // JWT secret key
		JWTAlgorithm:             algorithm,                      // JWT signing algorithm
		AccessTokenExpireMinutes: expireMinutes,                  // Access token lifetime
		RedisAddr:                os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:                os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:                  redisDB,                        // Redis database number
		IsProd:                   os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// DSN assembles the MySQL Data Source Name from the database fields
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
