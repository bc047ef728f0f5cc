package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	SubjectsFile string
	DetailsDir   string
	ProgressDir  string
	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		SubjectsFile: getEnv("SUBJECTS_FILE", "subjects_data.json"),
		DetailsDir:   getEnv("DETAILS_DIR", "subject_details"),
		ProgressDir:  getEnv("PROGRESS_DIR", "progress_records"),
		MailServer:   getEnv("MAIL_SERVER", "smtp.gmail.com"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
