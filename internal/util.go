package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	FmpApiKey string `json:"fmp"`
}

const fmpApiKeyEnv = "FMP_API_KEY"

func secretsFile() string {
	if os.Getenv("FINSPAN_ENV") == "dev" {
		return "secrets-dev.json"
	}
	return "secrets.json"
}

// LoadSecrets reads secrets.json (secrets-dev.json in dev) and lets
// FMP_API_KEY from the environment or a .env file override it. A missing
// secrets file is fine as long as the key comes from the environment.
func LoadSecrets() (*Secrets, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	secrets, err := LoadSecretsFromFile(secretsFile())
	if errors.Is(err, os.ErrNotExist) {
		secrets = &Secrets{}
	} else if err != nil {
		return nil, err
	}

	if key := os.Getenv(fmpApiKeyEnv); key != "" {
		secrets.FmpApiKey = key
	}
	if secrets.FmpApiKey == "" {
		return nil, fmt.Errorf("no fmp api key: set %s or add \"fmp\" to %s", fmpApiKeyEnv, secretsFile())
	}

	return secrets, nil
}

func LoadSecretsFromFile(path string) (*Secrets, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &secrets, nil
}
