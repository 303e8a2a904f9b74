package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LoadDotEnv reads the given env files (".env" when none are given) into the
// process environment. Variables that are already set win. A missing file is
// not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
