package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	SMTPHost   string // SMTP server host, mail disabled when empty
	SMTPPort   string // SMTP server port
	SMTPUser   string // SMTP username
	SMTPPass   string // SMTP password
	SMTPFrom   string // From address for outgoing mail
	WeeklyDays int    // Window length of the weekly expense view, in calendar days
	IsProd     bool   // Is production environment
}

// DefaultWeeklyDays is the documented default window of the weekly
// expense view: the last 7 calendar days up to now.
const DefaultWeeklyDays = 7

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	weeklyDays, _ := strconv.Atoi(os.Getenv("WEEKLY_WINDOW_DAYS"))
	if weeklyDays <= 0 {
		weeklyDays = DefaultWeeklyDays
	}
	return &Config{
		AppPort:    os.Getenv("APP_PORT"),          // Application port
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     os.Getenv("DB_HOST"),           // Database host
		DBPort:     os.Getenv("DB_PORT"),           // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		SMTPHost:   os.Getenv("SMTP_HOST"),         // SMTP server host
		SMTPPort:   os.Getenv("SMTP_PORT"),         // SMTP server port
		SMTPUser:   os.Getenv("SMTP_USER"),         // SMTP username
		SMTPPass:   os.Getenv("SMTP_PASS"),         // SMTP password
		SMTPFrom:   os.Getenv("SMTP_FROM"),         // From address
		WeeklyDays: weeklyDays,                     // Weekly view window
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// DSN builds the MySQL data source name from the loaded settings.
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
