// Package auth acquires, stores, and revokes the credentials used to
// talk to the document service. Service-account keys take precedence;
// otherwise an OAuth authorization-code flow runs once and the token is
// cached on disk for later invocations.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope grants read and write access to documents.
const Scope = "https://www.googleapis.com/auth/documents"

// ErrAuthentication is reported when credentials cannot be acquired or
// refreshed. It is surfaced, never retried.
var ErrAuthentication = errors.New("authentication failed")

// Config carries everything the credential flows need. It is threaded
// explicitly through the entry points; there is no package-level
// mutable state.
type Config struct {
	ClientID              string
	ClientSecret          string
	ServiceAccountKeyFile string

	// CredentialsPath is where the OAuth token cache lives.
	CredentialsPath string
}

// ConfigFromEnv builds a Config from the environment. The token cache
// defaults to ~/.gdoc-cli/credentials.json and can be overridden with
// GDOC_CREDENTIALS_PATH.
func ConfigFromEnv() Config {
	cfg := Config{
		ClientID:              os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret:          os.Getenv("GOOGLE_CLIENT_SECRET"),
		ServiceAccountKeyFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY_FILE"),
		CredentialsPath:       os.Getenv("GDOC_CREDENTIALS_PATH"),
	}

	if cfg.CredentialsPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CredentialsPath = filepath.Join(home, ".gdoc-cli", "credentials.json")
		} else {
			cfg.CredentialsPath = "gdoc-credentials.json"
		}
	}

	return cfg
}

// HTTPClient returns an authenticated http.Client. A service-account
// key file, when configured, wins over the OAuth flow.
func (cfg Config) HTTPClient(ctx context.Context) (*http.Client, error) {
	if cfg.ServiceAccountKeyFile != "" {
		return cfg.serviceAccountClient(ctx)
	}
	return cfg.oauthClient(ctx)
}

func (cfg Config) serviceAccountClient(ctx context.Context) (*http.Client, error) {
	key, err := os.ReadFile(cfg.ServiceAccountKeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read service account key file %s: %v", ErrAuthentication, cfg.ServiceAccountKeyFile, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(key, Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service account key: %v", ErrAuthentication, err)
	}

	return jwtConfig.Client(ctx), nil
}

func (cfg Config) oauthClient(ctx context.Context) (*http.Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET, or GOOGLE_SERVICE_ACCOUNT_KEY_FILE", ErrAuthentication)
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost",
		Scopes:       []string{Scope},
	}

	if token, err := loadToken(cfg.CredentialsPath); err == nil {
		// conf.Client refreshes expired tokens transparently via the
		// refresh token.
		return conf.Client(ctx, token), nil
	}

	token, err := runAuthorizationFlow(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err := saveToken(cfg.CredentialsPath, token); err != nil {
		color.Yellow("Warning: could not save credentials: %s", err)
	} else {
		color.Green("Credentials saved to %s", cfg.CredentialsPath)
	}

	return conf.Client(ctx, token), nil
}

// runAuthorizationFlow walks the user through the one-time consent
// step: print the consent URL, prompt for the pasted authorization
// code, exchange it for a token.
func runAuthorizationFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	color.Yellow("Open the following URL in your browser and authorize access:")
	fmt.Println(authURL)

	code, err := PromptAuthCode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", ErrAuthentication, err)
	}

	return token, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, err
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, errors.New("cached token expired with no refresh token")
	}

	return &token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0600)
}

// Revoke deletes the stored OAuth token cache. Service-account keys are
// not touched. It reports whether credentials existed.
func Revoke(cfg Config) (bool, error) {
	if _, err := os.Stat(cfg.CredentialsPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if err := os.Remove(cfg.CredentialsPath); err != nil {
		return false, err
	}
	return true, nil
}
