package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
)

// Settings configures the Microsoft identity platform client. ClientID is
// required; Tenant defaults to the multi-tenant "common" endpoint.
type Settings struct {
	ClientID  string
	Tenant    string
	Scopes    []string
	TokenFile string
	BaseURL   string
}

// DefaultScopes covers OneNote page creation plus refresh tokens.
var DefaultScopes = []string{"offline_access", "Notes.ReadWrite"}

// Prompt is invoked when the device-code flow needs the user to visit the
// verification URI and enter the code.
type Prompt func(verificationURI, userCode string)

func endpoint(tenant string) oauth2.Endpoint {
	if tenant == "" {
		tenant = "common"
	}
	base := "https://login.microsoftonline.com/" + tenant
	return oauth2.Endpoint{
		AuthURL:       base + "/oauth2/v2.0/authorize",
		TokenURL:      base + "/oauth2/v2.0/token",
		DeviceAuthURL: base + "/oauth2/v2.0/devicecode",
	}
}

// Connect returns a Graph client authenticated via the device-code flow.
// A cached token is reused (and silently refreshed) when present; only a
// missing or dead cache triggers a new interactive prompt.
func Connect(ctx context.Context, s Settings, prompt Prompt) (*Client, error) {
	if s.ClientID == "" {
		return nil, errors.New("graph: client id required (set graph.clientid)")
	}
	scopes := s.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	cfg := &oauth2.Config{
		ClientID: s.ClientID,
		Endpoint: endpoint(s.Tenant),
		Scopes:   scopes,
	}

	cache := newTokenCache(s.TokenFile)
	tok, err := cache.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "graph: token cache: %v\n", err)
	}

	if tok == nil {
		if prompt == nil {
			return nil, errors.New("graph: no cached token and no prompt available")
		}
		da, err := cfg.DeviceAuth(ctx)
		if err != nil {
			return nil, fmt.Errorf("graph: start device flow: %w", err)
		}
		prompt(da.VerificationURI, da.UserCode)
		tok, err = cfg.DeviceAccessToken(ctx, da)
		if err != nil {
			return nil, fmt.Errorf("graph: device flow: %w", err)
		}
		if err := cache.store(tok); err != nil {
			fmt.Fprintf(os.Stderr, "graph: token cache: %v\n", err)
		}
	}

	src := &cachingSource{
		base:  cfg.TokenSource(ctx, tok),
		cache: cache,
		last:  tok,
	}
	return NewClient(oauth2.NewClient(ctx, src), s.BaseURL), nil
}

// cachingSource persists refreshed tokens back to the cache file so the
// next invocation skips the interactive flow.
type cachingSource struct {
	base  oauth2.TokenSource
	cache *tokenCache
	last  *oauth2.Token
}

func (c *cachingSource) Token() (*oauth2.Token, error) {
	tok, err := c.base.Token()
	if err != nil {
		return nil, err
	}
	if c.last == nil || tok.AccessToken != c.last.AccessToken {
		c.last = tok
		if err := c.cache.store(tok); err != nil {
			fmt.Fprintf(os.Stderr, "graph: token cache: %v\n", err)
		}
	}
	return tok, nil
}

// tokenCache is the file-backed token store. Access is serialized by a
// mutex: the reminder loop and a push may both touch the client.
type tokenCache struct {
	mu   sync.Mutex
	path string
}

func newTokenCache(path string) *tokenCache {
	return &tokenCache{path: path}
}

func (t *tokenCache) load() (*oauth2.Token, error) {
	if t.path == "" {
		return nil, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("decode cached token: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, nil
	}
	return tok, nil
}

func (t *tokenCache) store(tok *oauth2.Token) error {
	if t.path == "" || tok == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, t.path)
}
