package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvVars reads a .env file into the process environment. A missing
// file is not an error so that deployments configured through real
// environment variables keep working.
func LoadEnvVars() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
