// Package googleauth runs the client side of the Google sign-in flow: it
// opens a loopback callback server, sends the user to Google's consent
// page, and trades the returned code for an ID token the backend accepts
// at /auth/google.
package googleauth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	// ErrStateMismatch means the callback carried a state value we never
	// issued; the response is discarded.
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrNoIDToken means Google's token response lacked an ID token.
	ErrNoIDToken = errors.New("no id_token in oauth response")
)

// Flow drives one interactive Google sign-in.
type Flow struct {
	config *oauth2.Config
}

// New creates a flow for the given OAuth client. The redirect URL is
// assigned when Authorize binds its loopback listener.
func New(clientID, clientSecret string) (*Flow, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google client ID and secret are required")
	}

	return &Flow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}, nil
}

type callbackResult struct {
	code string
	err  error
}

// Authorize runs the flow to completion: prints the consent URL, waits for
// the browser to hit the loopback callback, and returns the Google ID
// token. Cancelling ctx aborts the wait.
func (f *Flow) Authorize(ctx context.Context) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to bind callback listener: %w", err)
	}
	defer listener.Close()

	cfg := *f.config
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr())

	state, err := newState()
	if err != nil {
		return "", err
	}

	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", callbackHandler(state, results))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Debug().Err(err).Msg("callback server stopped")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Open this URL in your browser to sign in with Google:\n\n  %s\n\n", cfg.AuthCodeURL(state))

	var result callbackResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result = <-results:
	}
	if result.err != nil {
		return "", result.err
	}

	token, err := cfg.Exchange(ctx, result.code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrNoIDToken
	}

	log.Debug().Msg("google sign-in completed")

	return idToken, nil
}

// callbackHandler validates the state parameter and hands the code to the
// waiting Authorize call. Only the first valid callback is delivered.
func callbackHandler(state string, results chan<- callbackResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("state") != state {
			log.Warn().Msg("oauth callback state mismatch")
			http.Error(w, "Authentication failed", http.StatusBadRequest)
			deliver(results, callbackResult{err: ErrStateMismatch})
			return
		}

		code := r.FormValue("code")
		if code == "" {
			http.Error(w, "Authentication failed", http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.New("oauth callback missing code")})
			return
		}

		fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		deliver(results, callbackResult{code: code})
	}
}

func deliver(results chan<- callbackResult, result callbackResult) {
	select {
	case results <- result:
	default:
	}
}

// newState generates the CSRF state for the consent round trip.
func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return base58.Encode(buf), nil
}
