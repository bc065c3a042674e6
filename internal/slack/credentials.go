package slack

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// TokenEnvVar is the environment variable consulted for the API token.
const TokenEnvVar = "SLACK_TOKEN"

// LoadToken resolves the API token: an explicit value wins, then the
// SLACK_TOKEN environment variable, then a .env file in the working
// directory. A missing .env file is not an error; a missing token is.
func LoadToken(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if token := os.Getenv(TokenEnvVar); token != "" {
		return token, nil
	}
	// Side effect on the process environment is fine here: the token is the
	// only variable this tool reads from .env.
	_ = godotenv.Load()
	if token := os.Getenv(TokenEnvVar); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no Slack token provided: pass --token or set %s", TokenEnvVar)
}
