// Package dotenv loads a local .env file and command-line overrides into the
// process environment before configuration is read.
package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env from the working directory when present. Variables already
// set in the environment win. A -port flag overrides PORT.
func Load(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	fset := flag.NewFlagSet("tracking-simulator", flag.ContinueOnError)
	port := fset.String("port", "", "Server port (overrides PORT environment variable)")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if *port != "" {
		if err := os.Setenv("PORT", *port); err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
