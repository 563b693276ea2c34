package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

func TestToken_interactiveFlow(t *testing.T) {
	f := newAuthFixture(t)
	defer f.Close()

	verifierCalls := 0
	cache := NewCache(f.config, f.store, f.clock, func(authURL string) (string, error) {
		verifierCalls++
		if authURL == "" {
			t.Error("verifier invoked without an auth url")
		}
		return "verifier-code", nil
	}, zerolog.Nop())

	token, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error acquiring token: %v", err)
	}
	if token.AccessToken != "access_token_1" {
		t.Errorf("unexpected access token: %s", token.AccessToken)
	}
	if verifierCalls != 1 {
		t.Errorf("expected 1 verifier call, got %d", verifierCalls)
	}

	// The token must have been persisted for the next run.
	saved, err := f.store.Get()
	if err != nil || saved == nil {
		t.Fatalf("expected a persisted token, got %v (err %v)", saved, err)
	}
	if saved.AccessToken != "access_token_1" {
		t.Errorf("persisted access token wrong: %s", saved.AccessToken)
	}

	// A second call within the hour reuses the credential without another
	// trip through the verifier.
	token2, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if token2 != token {
		t.Error("expected the identical token on the second call")
	}
	if verifierCalls != 1 {
		t.Errorf("verifier called again, total calls: %d", verifierCalls)
	}
}

func TestToken_freshFromStore(t *testing.T) {
	f := newAuthFixture(t)
	defer f.Close()

	seed := &oauth2.Token{
		AccessToken:  "seeded",
		RefreshToken: "seeded_refresh",
		Expiry:       f.clock.Now().Add(30 * time.Minute),
	}
	if err := f.store.Put(seed); err != nil {
		t.Fatalf("error seeding store: %v", err)
	}

	cache := NewCache(f.config, f.store, f.clock, failingVerifier(t), zerolog.Nop())

	token, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AccessToken != "seeded" {
		t.Errorf("expected the seeded token back, got %s", token.AccessToken)
	}
	if f.tokenRequests != 0 {
		t.Errorf("expected no refresh requests, got %d", f.tokenRequests)
	}
}

func TestToken_staleTriggersRefresh(t *testing.T) {
	f := newAuthFixture(t)
	defer f.Close()

	seed := &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "stale_refresh",
		Expiry:       f.clock.Now().Add(-61 * time.Minute),
	}
	if err := f.store.Put(seed); err != nil {
		t.Fatalf("error seeding store: %v", err)
	}

	cache := NewCache(f.config, f.store, f.clock, failingVerifier(t), zerolog.Nop())

	token, err := cache.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error refreshing: %v", err)
	}
	if token.AccessToken != "access_token_1" {
		t.Errorf("expected the refreshed token, got %s", token.AccessToken)
	}
	if f.tokenRequests != 1 {
		t.Errorf("expected exactly 1 refresh request, got %d", f.tokenRequests)
	}

	saved, err := f.store.Get()
	if err != nil || saved == nil {
		t.Fatalf("expected a persisted token, got %v (err %v)", saved, err)
	}
	if saved.AccessToken != "access_token_1" {
		t.Errorf("refreshed token was not persisted, store has: %s", saved.AccessToken)
	}
}

func TestToken_verifierCancelled(t *testing.T) {
	f := newAuthFixture(t)
	defer f.Close()

	cache := NewCache(f.config, f.store, f.clock, func(authURL string) (string, error) {
		return "", nil
	}, zerolog.Nop())

	_, err := cache.Token(context.Background())
	if !errors.Is(err, ErrAuthDenied) {
		t.Errorf("expected ErrAuthDenied, got %v", err)
	}
}

func TestToken_verifierError(t *testing.T) {
	f := newAuthFixture(t)
	defer f.Close()

	boom := errors.New("dialog exploded")
	cache := NewCache(f.config, f.store, f.clock, func(authURL string) (string, error) {
		return "", boom
	}, zerolog.Nop())

	_, err := cache.Token(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected the verifier error to propagate, got %v", err)
	}
}

type authFixture struct {
	config        *oauth2.Config
	store         Store
	clock         *clock.Mock
	server        *httptest.Server
	tokenRequests int
}

func newAuthFixture(t *testing.T) *authFixture {
	f := &authFixture{}

	issued := 0
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tokenRequests++
		issued++
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{
			"access_token": "access_token_%d",
			"refresh_token": "refresh_token_%d",
			"token_type": "bearer",
			"expires_in": 3600
		}`, issued, issued)
	}))

	f.config = &oauth2.Config{
		ClientID:     "fakeClientID",
		ClientSecret: "fakeClientSecret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/auth", f.server.URL),
			TokenURL: fmt.Sprintf("%s/token", f.server.URL),
		},
		RedirectURL: "oob",
	}

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("error creating file store: %v", err)
	}
	f.store = store

	f.clock = clock.NewMock()
	f.clock.Set(time.Now())

	return f
}

func (f *authFixture) Close() {
	f.server.Close()
}

func failingVerifier(t *testing.T) VerifierFunc {
	return func(authURL string) (string, error) {
		t.Error("verifier should not have been invoked")
		return "", nil
	}
}
