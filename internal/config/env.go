package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DevEnvFilename  = ".env.development"
	ProdEnvFilename = ".env.production"
)

// LoadEnvFiles loads dir/.env.development (or .env.production when
// API_ENV=production) and then dir/.env. Missing files are skipped; variables
// already present in the process environment are never overwritten.
func LoadEnvFiles(dir string) error {
	envFile := DevEnvFilename
	if os.Getenv("API_ENV") == "production" {
		envFile = ProdEnvFilename
	}
	for _, name := range []string{envFile, ".env"} {
		path := filepath.Join(dir, name)
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		log.Infof("loaded environment from %s", path)
	}
	return nil
}
