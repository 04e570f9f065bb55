package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	AppPort           string
	DefaultLocationID int
	DefaultRoom       string
	SeedSections      []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system ENV")
	}

	AppPort = GetEnv("PORT", "3000")
	DefaultRoom = GetEnv("DEFAULT_ROOM", "Main Hall")
	SeedSections = splitCSV(GetEnv("SEED_SECTIONS", "CS-A,CS-B,CS-C"))

	DefaultLocationID = 1
	if v := GetEnv("DEFAULT_LOCATION_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			DefaultLocationID = n
		} else {
			log.Printf("invalid DEFAULT_LOCATION_ID=%q, falling back to 1", v)
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
