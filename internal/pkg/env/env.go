package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Env holds the key/value pairs read from the .env file. Process
// environment variables still take effect through GetEnv when no file was
// loaded, so containerized deployments can run without one.
var Env map[string]string

// GetEnv resolves key from the loaded .env map first, then from the
// process environment, then falls back to def.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the nearest .env file. Binaries run from the project
// root, from under cmd/ and from test working directories, hence the
// relative candidates.
func SetupEnvFile() {
	candidates := []string{
		".env",
		"../../.env",
		"../../../.env",
	}

	for _, file := range candidates {
		values, err := godotenv.Read(file)
		if err != nil {
			continue
		}
		Env = values
		return
	}

	log.Println("No .env file found, using process environment only")
}

// IsDev reports whether APP_ENV is set to dev.
func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
