package bungie

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

const (
	authorizeURL    = "https://www.bungie.net/en/OAuth/Authorize"
	tokenPath       = "/Platform/App/OAuth/token/"
	callbackAddr    = "127.0.0.1:8112"
	loginTimeout    = 2 * time.Minute
	membershipsPath = "/Platform/User/GetMembershipsForCurrentUser/"
)

// Gateway implements ports.AuthGateway over Bungie's OAuth flow. Tokens and
// the selected membership are persisted so later runs authenticate without
// user interaction.
type Gateway struct {
	client  *Client
	oauth   *oauth2.Config
	tokens  ports.TokenStore
	members ports.MembershipStore
	opener  ports.URLOpener
	log     *zap.Logger

	mu         sync.Mutex
	token      *oauth2.Token
	membership *domain.Membership
}

// NewGateway creates the auth gateway for the given OAuth client ID.
func NewGateway(client *Client, clientID string, tokens ports.TokenStore, members ports.MembershipStore, opener ports.URLOpener, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		client: client,
		oauth: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authorizeURL,
				TokenURL: client.baseURL + tokenPath,
			},
			RedirectURL: "http://" + callbackAddr + "/callback",
		},
		tokens:  tokens,
		members: members,
		opener:  opener,
		log:     log,
	}
}

// HasValidAuth reports whether a non-expired token is on hand.
func (g *Gateway) HasValidAuth() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token.Valid()
}

// Auth establishes authentication from the persisted token, refreshing it
// when expired. It returns (false, nil) when no token exists at all: that
// state needs the interactive login, not a retry.
func (g *Gateway) Auth(ctx context.Context) (bool, error) {
	g.mu.Lock()
	token := g.token
	g.mu.Unlock()

	if token == nil {
		stored, err := g.tokens.LoadToken()
		if err != nil {
			return false, fmt.Errorf("load token: %w", err)
		}
		token = stored
	}
	if token == nil {
		return false, nil
	}

	if !token.Valid() {
		fresh, err := g.oauth.TokenSource(ctx, token).Token()
		if err != nil {
			return false, &domain.AuthError{Err: err}
		}
		token = fresh
		if err := g.tokens.SaveToken(token); err != nil {
			g.log.Warn("persist refreshed token", zap.Error(err))
		}
	}

	g.mu.Lock()
	g.token = token
	g.mu.Unlock()

	if err := g.ensureMembership(ctx, token); err != nil {
		return false, err
	}
	return true, nil
}

// ensureMembership makes sure a platform membership is selected, loading
// the stored choice or defaulting to the account's primary membership.
func (g *Gateway) ensureMembership(ctx context.Context, token *oauth2.Token) error {
	g.mu.Lock()
	have := g.membership != nil
	g.mu.Unlock()
	if have {
		return nil
	}

	if m, ok, err := g.members.LoadMembership(); err == nil && ok {
		g.mu.Lock()
		g.membership = &m
		g.mu.Unlock()
		return nil
	}

	var resp membershipsResponse
	if err := g.client.get(ctx, membershipsPath, token.AccessToken, &resp); err != nil {
		return fmt.Errorf("fetch memberships: %w", err)
	}
	if len(resp.DestinyMemberships) == 0 {
		return errors.New("account has no Destiny memberships")
	}

	chosen := resp.DestinyMemberships[0]
	for _, m := range resp.DestinyMemberships {
		if m.MembershipID == resp.PrimaryMembershipID {
			chosen = m
			break
		}
	}
	g.SetSelectedMembership(domain.Membership{
		ID:          chosen.MembershipID,
		Type:        chosen.MembershipType,
		DisplayName: chosen.DisplayName,
	})
	return nil
}

// HasSelectedMembership reports whether a membership has been chosen.
func (g *Gateway) HasSelectedMembership() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.membership != nil
}

// SelectedMembership returns the chosen membership.
func (g *Gateway) SelectedMembership() (domain.Membership, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.membership == nil {
		return domain.Membership{}, false
	}
	return *g.membership, true
}

// SetSelectedMembership records and persists the membership to poll.
func (g *Gateway) SetSelectedMembership(m domain.Membership) {
	g.mu.Lock()
	g.membership = &m
	g.mu.Unlock()
	if err := g.members.SaveMembership(m); err != nil {
		g.log.Warn("persist membership", zap.Error(err))
	}
}

// Token returns the current access token, or "".
func (g *Gateway) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.token == nil {
		return ""
	}
	return g.token.AccessToken
}

// ManualStartAuth runs the interactive authorization-code login: it opens
// the Bungie authorize page in a browser and captures the code on a
// loopback listener, then exchanges and persists the token. Blocks until
// the login completes or times out; callers run it off the UI loop.
func (g *Gateway) ManualStartAuth() error {
	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()

	state := uuid.NewString()
	codes := make(chan string, 1)

	ln, err := net.Listen("tcp", callbackAddr)
	if err != nil {
		return fmt.Errorf("listen for oauth callback: %w", err)
	}
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" || r.URL.Query().Get("state") != state {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this tab and return to powerboard.")
		select {
		case codes <- r.URL.Query().Get("code"):
		default:
		}
	})}
	go srv.Serve(ln)
	defer srv.Close()

	url := g.oauth.AuthCodeURL(state)
	if err := g.opener.OpenURL(url); err != nil {
		g.log.Warn("open browser", zap.Error(err))
		// The URL is still usable by hand; keep waiting for the callback.
	}
	g.log.Info("waiting for oauth callback", zap.String("url", url))

	var code string
	select {
	case code = <-codes:
	case <-ctx.Done():
		return fmt.Errorf("login timed out: %w", ctx.Err())
	}

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return &domain.AuthError{Err: err}
	}

	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	if err := g.tokens.SaveToken(token); err != nil {
		g.log.Warn("persist token", zap.Error(err))
	}
	return nil
}
