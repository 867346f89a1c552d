package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicBase string
}

// Listing holds the marketplace rules every call site shares. They are defined
// here once so handlers, services and the catalog engine never carry their own
// copies.
type Listing struct {
	Areas         []string
	PropertyTypes []string
	RentMin       int
	RentMax       int
	RentStep      int
	MaxPerOwner   int
	MinImages     int
	MaxImages     int
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Listing              Listing
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
	AdminEmails          []string
}

// PuneAreas is the fixed location set a listing may belong to.
var PuneAreas = []string{
	"Baner", "Wakad", "Hinjewadi", "Kothrud", "Kharadi", "Hadapsar",
	"Viman Nagar", "Aundh", "Pimple Saudagar", "Magarpatta", "Koregaon Park",
	"Shivaji Nagar", "Deccan", "Pimpri-Chinchwad", "Kalyani Nagar", "Yerawada",
	"Kondhwa", "Undri", "NIBM", "Warje",
}

// PropertyTypes is the closed set of unit types.
var PropertyTypes = []string{"1rk", "1bhk", "2bhk", "3bhk+"}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func LoadDB() DB {
	return DB{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "password"),
		Name:     getEnv("DB_NAME", "punehomecircle"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "property-images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicBase: getEnv("MINIO_PUBLIC_BASE", "http://localhost:9000"),
	}
}

func LoadListing() Listing {
	return Listing{
		Areas:         PuneAreas,
		PropertyTypes: PropertyTypes,
		RentMin:       getEnvAsInt("RENT_MIN", 5000),
		RentMax:       getEnvAsInt("RENT_MAX", 100000),
		RentStep:      getEnvAsInt("RENT_STEP", 1000),
		MaxPerOwner:   getEnvAsInt("MAX_LISTINGS_PER_OWNER", 2),
		MinImages:     getEnvAsInt("MIN_LISTING_IMAGES", 2),
		MaxImages:     getEnvAsInt("MAX_LISTING_IMAGES", 5),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Listing:              LoadListing(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		AdminEmails:          parseList(getEnv("ADMIN_EMAILS", "")),
	}
}

// IsAdminEmail reports whether the email is on the admin allow-list.
// Comparison is case-insensitive; the same check gates every admin operation.
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// ValidArea reports whether area is one of the enumerated Pune areas.
func (l Listing) ValidArea(area string) bool {
	for _, a := range l.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// ValidPropertyType reports whether t is one of the enumerated unit types.
func (l Listing) ValidPropertyType(t string) bool {
	for _, pt := range l.PropertyTypes {
		if pt == t {
			return true
		}
	}
	return false
}
