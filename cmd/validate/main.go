package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/dream-market/pkg/scenario"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <scenario.yaml> [more files...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("scenario file must have a .yaml extension: %s", baseName)
	}
	if !isValidScenarioFilename(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("scenario filename %q must be lowercase snake_case (e.g. dream_market.yaml)", baseName)
	}

	s, err := scenario.LoadScenario(filename)
	if err != nil {
		var verr *scenario.ValidationError
		if errors.As(err, &verr) {
			var b strings.Builder
			fmt.Fprintf(&b, "validation errors in %s:\n", filename)
			for _, p := range verr.Problems {
				fmt.Fprintf(&b, "  - %s\n", p)
			}
			return errors.New(strings.TrimRight(b.String(), "\n"))
		}
		return err
	}

	fmt.Printf("%s: %d stages, %d enemy templates, start at %q\n",
		s.Name, len(s.Stages), len(s.Enemies), s.Start)
	return nil
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidScenarioFilename(name string) bool {
	// Allow 'x.' prefix for experimental scenarios
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
