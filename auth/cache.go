package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// ErrAuthDenied is returned when the user cancels the verifier dialog
// instead of entering a code. There is no way to proceed without a
// credential, so callers should treat this as fatal.
var ErrAuthDenied = errors.New("authorization denied by user")

// VerifierFunc asks the user to visit authURL, approve access and enter the
// verifier code Yahoo displays. It returns "" when the user cancels. The
// call may block for as long as the user takes.
type VerifierFunc func(authURL string) (string, error)

// Cache owns the credential lifecycle: interactive acquisition when no
// token is cached, pass-through while the token is fresh, and a
// refresh-and-persist cycle once it goes stale. Yahoo access tokens are
// good for one hour from issue.
type Cache struct {
	config   *oauth2.Config
	store    Store
	clock    clock.Clock
	verifier VerifierFunc
	log      zerolog.Logger

	token *oauth2.Token
}

func NewCache(config *oauth2.Config, store Store, clock clock.Clock, verifier VerifierFunc, log zerolog.Logger) *Cache {
	return &Cache{
		config:   config,
		store:    store,
		clock:    clock,
		verifier: verifier,
		log:      log,
	}
}

// Token returns a credential that is valid right now. Provider errors are
// propagated without retry.
func (c *Cache) Token(ctx context.Context) (*oauth2.Token, error) {
	if c.token == nil {
		t, err := c.store.Get()
		if err != nil {
			return nil, err
		}
		c.token = t
	}

	if c.token == nil {
		return c.authorize(ctx)
	}

	if c.clock.Now().Before(c.token.Expiry) {
		return c.token, nil
	}
	return c.refresh(ctx)
}

// Client returns an http.Client that authenticates with a currently valid
// token. The token source is static on purpose: if the oauth2 transport
// refreshed in the background we would never see the new token to persist
// it, and the next run would start from a dead credential.
func (c *Cache) Client(ctx context.Context) (*http.Client, error) {
	t, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(t)), nil
}

// authorize runs the interactive flow: hand the auth URL to the verifier
// callback, exchange the code it returns, persist and cache the result.
func (c *Cache) authorize(ctx context.Context) (*oauth2.Token, error) {
	authURL := c.config.AuthCodeURL(generateRandomState())

	code, err := c.verifier(authURL)
	if err != nil {
		return nil, fmt.Errorf("error getting verifier code: %w", err)
	}
	if code == "" {
		return nil, ErrAuthDenied
	}

	t, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error exchanging verifier code: %w", err)
	}

	if err := c.store.Put(t); err != nil {
		return nil, fmt.Errorf("error saving new token: %w", err)
	}

	c.log.Info().Time("expiry", t.Expiry).Msg("new token acquired")
	c.token = t
	return t, nil
}

func (c *Cache) refresh(ctx context.Context) (*oauth2.Token, error) {
	c.log.Info().Time("expiry", c.token.Expiry).Msg("refreshing stale token")

	src := c.config.TokenSource(ctx, c.token)
	t, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("error refreshing token: %w", err)
	}

	if t.AccessToken != c.token.AccessToken {
		if err := c.store.Put(t); err != nil {
			return nil, fmt.Errorf("error saving refreshed token: %w", err)
		}
	}

	c.token = t
	return t, nil
}

func generateRandomState() string {
	var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	b := make([]rune, 15)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
