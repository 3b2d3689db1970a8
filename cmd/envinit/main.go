// Command envinit interactively collects the record store credentials
// and table IDs and writes them to a local .env file.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

const envFile = ".env"

func main() {
	in := bufio.NewReader(os.Stdin)
	env := make(map[string]string)

	fmt.Println("\n--- Airtable credentials (input won't be shown for API key) ---")
	apiKey, err := readSecret("AIRTABLE_API_KEY: ")
	if err != nil {
		fail(err)
	}
	env["AIRTABLE_API_KEY"] = apiKey

	for _, p := range []prompt{
		{"BASE_ID", "BASE_ID (app…): "},
		{"TABLE_ID", "TABLE_ID (tbl… main collection): "},
	} {
		v, err := readLine(in, p.label)
		if err != nil {
			fail(err)
		}
		env[p.key] = v
	}

	fmt.Println("\n--- Linked table IDs (each starts with tbl…) ---")
	for _, p := range []prompt{
		{"STATIONS_TABLE_ID", "STATIONS_TABLE_ID: "},
		{"LAYOUTS_TABLE_ID", "LAYOUTS_TABLE_ID: "},
		{"PROP_TYPES_TABLE_ID", "PROP_TYPES_TABLE_ID: "},
		{"AREAS_TABLE_ID", "AREAS_TABLE_ID: "},
		{"PRICE_RANGE_TABLE_ID", "PRICE_RANGE_TABLE_ID: "},
		{"PROPERTY_KIND_TABLE_ID", "PROPERTY_KIND_TABLE_ID: "},
	} {
		v, err := readLine(in, p.label)
		if err != nil {
			fail(err)
		}
		env[p.key] = v
	}

	if err := godotenv.Write(env, envFile); err != nil {
		fail(fmt.Errorf("write %s: %w", envFile, err))
	}

	fmt.Printf("\nWrote %s (make sure %q is in .gitignore and NOT committed)\n", envFile, envFile)
}

type prompt struct {
	key   string
	label string
}

// readSecret reads a line without echoing it back to the terminal.
func readSecret(label string) (string, error) {
	fmt.Print(label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readLine(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	s, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "envinit: %v\n", err)
	os.Exit(1)
}
