package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is passed explicitly to everything that needs it; nothing reads
// ambient state at submit time.
type Config struct {
	PostgresURL    string
	MongoURL       string
	MongoDatabase  string
	DBType         string
	ConnectTimeout time.Duration
	Port           string
	CompanyID      int64
	PDFSavePath    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL:   os.Getenv("POSTGRES_URL"),
		MongoURL:      os.Getenv("MONGO_URL"),
		MongoDatabase: os.Getenv("MONGO_DB_NAME"),
		DBType:        os.Getenv("DB_TYPE"),
		Port:          os.Getenv("PORT"),
		PDFSavePath:   os.Getenv("PDF_SAVE_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "freightdesk"
	}
	cfg.ConnectTimeout = 10 * time.Second
	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid DB_CONNECT_TIMEOUT: %v", err)
		}
		cfg.ConnectTimeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("COMPANY_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("invalid COMPANY_ID: %v", err)
		}
		cfg.CompanyID = id
	}
	return cfg
}
