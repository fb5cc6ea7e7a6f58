package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/shift-cockpit/internal/config"
)

const (
	AuthPort     = 3000
	authTimeout  = 5 * time.Minute
	callbackPath = "/oauth/callback"
	tokenDirName = ".shift-cockpit/tokens"
)

// OAuth scopes for Google APIs
const (
	ScopeSheets    = "https://www.googleapis.com/auth/spreadsheets"
	ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"
)

// scopes are requested together so one consent serves the sheets and gmail clients
var scopes = []string{ScopeSheets, ScopeGmailSend}

// GetOAuthConfig creates an OAuth2 config that redirects to the local callback server
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	raw, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// Authenticator holds the Google token of one environment for every API client of the process
type Authenticator struct {
	config *oauth2.Config
	file   tokenFile
	logger *zap.Logger

	mu    sync.Mutex
	token *oauth2.Token
}

// NewAuthenticator creates an authenticator whose token is kept under ~/.shift-cockpit/tokens
func NewAuthenticator(oauthCfg *config.OAuthClientConfig, env string, logger *zap.Logger) (*Authenticator, error) {
	oauthConfig, err := GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &Authenticator{
		config: oauthConfig,
		file:   tokenFile{path: filepath.Join(homeDir, tokenDirName, "token-"+env+".json")},
		logger: logger,
	}, nil
}

// HTTPClient returns a client that authorizes requests and refreshes the token when it expires
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	return a.config.Client(ctx, token), nil
}

// Token returns a token granted every scope, from memory, the token file or a browser consent.
// Only one consent runs at a time.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != nil {
		return a.token, nil
	}

	token := a.reuseStoredToken(ctx)
	if token == nil {
		a.logger.Info("No usable token found, starting OAuth flow")
		var err error
		if token, err = a.authorize(ctx); err != nil {
			return nil, err
		}
	}

	a.token = token
	return token, nil
}

// reuseStoredToken returns the persisted token when it carries every scope and is valid or refreshable
func (a *Authenticator) reuseStoredToken(ctx context.Context) *oauth2.Token {
	stored, err := a.file.load()
	if err != nil {
		a.logger.Warn("Ignoring token file", zap.Error(err))
		return nil
	}
	if stored == nil {
		return nil
	}
	if missing := missingScopes(stored.Scopes); len(missing) > 0 {
		a.logger.Info("Stored token lacks scopes", zap.Strings("missing", missing))
		return nil
	}
	if stored.Token.Valid() {
		return stored.Token
	}
	if stored.Token.RefreshToken == "" {
		return nil
	}

	refreshed, err := a.config.TokenSource(ctx, stored.Token).Token()
	if err != nil {
		a.logger.Warn("Failed to refresh stored token", zap.Error(err))
		return nil
	}
	a.logger.Info("Token refreshed")
	if err := a.file.save(&storedToken{Token: refreshed, Scopes: stored.Scopes}); err != nil {
		a.logger.Warn("Failed to save refreshed token", zap.Error(err))
	}
	return refreshed
}

// authorize runs the consent flow through the local callback server
func (a *Authenticator) authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", AuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for oauth callback: %w", err)
	}

	state := uuid.NewString()
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", a.config.AuthCodeURL(state, oauth2.AccessTypeOffline))

	waitCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	code, err := awaitCode(waitCtx, listener, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	granted := grantedScopes(token)
	if missing := missingScopes(granted); len(missing) > 0 {
		return nil, fmt.Errorf("consent did not grant scopes: %v", missing)
	}

	if err := a.file.save(&storedToken{Token: token, Scopes: granted}); err != nil {
		a.logger.Warn("Failed to save token", zap.Error(err))
	}
	return token, nil
}

type callbackResult struct {
	code string
	err  error
}

// awaitCode serves the OAuth redirect on listener until a code for state arrives or ctx ends.
// The listener is closed on return.
func awaitCode(ctx context.Context, listener net.Listener, state string) (string, error) {
	results := make(chan callbackResult, 1)
	deliver := func(r callbackResult) {
		select {
		case results <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "Unexpected state", http.StatusBadRequest)
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			deliver(callbackResult{err: fmt.Errorf("authorization denied: %s", query.Get("error"))})
			return
		}
		fmt.Fprintln(w, "Authorization successful. You can close this window.")
		deliver(callbackResult{code: code})
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deliver(callbackResult{err: fmt.Errorf("callback server: %w", err)})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	select {
	case r := <-results:
		return r.code, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("no authorization received: %w", ctx.Err())
	}
}

// grantedScopes reads the scopes Google reports in the token response
func grantedScopes(token *oauth2.Token) []string {
	scope, _ := token.Extra("scope").(string)
	return strings.Fields(scope)
}

func missingScopes(granted []string) []string {
	var missing []string
	for _, s := range scopes {
		if !slices.Contains(granted, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// storedToken is the token file content; the token response's scopes are lost on
// serialization so they are kept alongside
type storedToken struct {
	Token  *oauth2.Token `json:"token"`
	Scopes []string      `json:"scopes"`
}

// tokenFile persists one environment's token with owner-only permissions
type tokenFile struct {
	path string
}

// load returns nil, nil when there is no file or it predates scope tracking
func (f tokenFile) load() (*storedToken, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	if stored.Token == nil {
		return nil, nil
	}
	return &stored, nil
}

func (f tokenFile) save(stored *storedToken) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
