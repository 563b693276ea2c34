package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dsimpson1980/yff/auth"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// TestEnv bundles the fakes most tests need: a mock clock pinned inside
// week 1 of the 2014 season, the fake Yahoo API and a fake OAuth token
// endpoint.
type TestEnv struct {
	Clock       *clock.Mock
	FakeYahoo   *FakeYahooServer
	OAuthConfig *oauth2.Config
	fakeOAuth   *httptest.Server
}

func NewTestEnv() *TestEnv {
	fakeOAuth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"access_token": "access_token",
			"refresh_token": "refresh_token",
			"token_type": "bearer",
			"expires_in": 3600
		}`))
	}))

	mock := clock.NewMock()
	// A Sunday afternoon in week 1 of the 2014 season.
	mock.Set(time.Date(2014, time.September, 7, 17, 0, 0, 0, time.UTC))

	return &TestEnv{
		Clock:     mock,
		FakeYahoo: NewFakeYahooServer(),
		OAuthConfig: &oauth2.Config{
			ClientID:     "fakeClientID",
			ClientSecret: "fakeClientSecret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("%s/auth", fakeOAuth.URL),
				TokenURL: fmt.Sprintf("%s/token", fakeOAuth.URL),
			},
			RedirectURL: "oob",
		},
		fakeOAuth: fakeOAuth,
	}
}

func (e *TestEnv) Close() {
	e.FakeYahoo.Close()
	e.fakeOAuth.Close()
}

// TokenCache returns a cache pre-seeded with a credential that stays fresh
// for the whole test, so nothing tries the interactive flow.
func (e *TestEnv) TokenCache(t *testing.T) *auth.Cache {
	store, err := auth.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("error creating token store: %v", err)
	}

	err = store.Put(&oauth2.Token{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		Expiry:       time.Now().Add(1 * time.Hour),
	})
	if err != nil {
		t.Fatalf("error seeding token store: %v", err)
	}

	verifier := func(authURL string) (string, error) {
		t.Error("the interactive verifier flow should not run in tests")
		return "", nil
	}
	return auth.NewCache(e.OAuthConfig, store, e.Clock, verifier, zerolog.Nop())
}
