package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kevgathuku/docue/internal/core/domain"
	"github.com/kevgathuku/docue/internal/core/ports"
	"github.com/kevgathuku/docue/internal/store"
	"github.com/kevgathuku/docue/internal/tokenstore"
)

const userJSON = `{"id":"u1","username":"kevin","email":"k@e.com","name":{"first":"K","last":"G"},"role":{"id":"r1","title":"viewer","accessLevel":0}}`

// scriptedGateway returns one canned response per call, in order.
type scriptedGateway struct {
	responses []ports.Response
	calls     []string
	tokens    []string
}

func (g *scriptedGateway) Request(_ context.Context, method, path string, _ any, token string) ports.Response {
	g.calls = append(g.calls, method+" "+path)
	g.tokens = append(g.tokens, token)
	if len(g.responses) == 0 {
		return ports.Response{Status: 0, Err: "network"}
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp
}

func newKeeper(gw ports.Gateway) (*Keeper, *store.Store, *tokenstore.MemStore) {
	st := store.New()
	tokens := tokenstore.NewMemStore()
	return NewKeeper(gw, tokens, st, zerolog.Nop()), st, tokens
}

func TestLoginSuccess(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{OK: true, Status: 200, Body: []byte(`{"token":"jwt-abc","user":` + userJSON + `}`)},
	}}
	k, st, tokens := newKeeper(gw)

	err := k.Login(context.Background(), ports.Credentials{Username: "kevin", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	sess := st.Session()
	if !sess.LoggedIn() {
		t.Fatalf("session = %+v, want logged in", sess)
	}
	if sess.Token != "jwt-abc" || sess.User == nil || sess.User.Username != "kevin" {
		t.Errorf("session = %+v", sess)
	}
	if got, _ := tokens.Load(); got != "jwt-abc" {
		t.Errorf("persisted token = %q, want jwt-abc", got)
	}
	if gw.calls[0] != "POST /users/login" {
		t.Errorf("call = %q", gw.calls[0])
	}
}

func TestLoginRejected(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{Status: 401, Err: "invalid credentials"},
	}}
	k, st, tokens := newKeeper(gw)

	err := k.Login(context.Background(), ports.Credentials{Username: "kevin", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
	}

	sess := st.Session()
	if sess.State != domain.StateIdle || sess.Error != "invalid credentials" {
		t.Errorf("session = %+v, want idle with error", sess)
	}
	if got, _ := tokens.Load(); got != "" {
		t.Errorf("token persisted on failed login: %q", got)
	}
}

func TestLoginValidatesBeforeRequest(t *testing.T) {
	gw := &scriptedGateway{}
	k, _, _ := newKeeper(gw)

	err := k.Login(context.Background(), ports.Credentials{Username: "kevin"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Login() error = %v, want ErrValidation", err)
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway called %d times for invalid input", len(gw.calls))
	}
}

func TestLoginMalformedAuthPayload(t *testing.T) {
	// A 200 whose body fails to decode must not leave a token anywhere.
	gw := &scriptedGateway{responses: []ports.Response{
		{OK: true, Status: 200, Body: []byte(`{"token":"jwt-abc","user":{"id":"u1"}}`)},
	}}
	k, st, tokens := newKeeper(gw)

	err := k.Login(context.Background(), ports.Credentials{Username: "kevin", Password: "secret"})
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("Login() error = %v, want ErrDecode", err)
	}

	sess := st.Session()
	if sess.State != domain.StateIdle || sess.Token != "" {
		t.Errorf("session = %+v, want idle without token", sess)
	}
	if got, _ := tokens.Load(); got != "" {
		t.Errorf("token persisted from undecodable payload: %q", got)
	}
}

func TestSignupSuccess(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{OK: true, Status: 201, Body: []byte(`{"token":"jwt-new","user":` + userJSON + `}`)},
	}}
	k, st, _ := newKeeper(gw)

	input := ports.SignupInput{
		Username: "kevin", Email: "k@e.com", Password: "secret1",
		FirstName: "K", LastName: "G",
	}
	if err := k.Signup(context.Background(), input); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if !st.Session().LoggedIn() {
		t.Error("signup did not authenticate the session")
	}
	if gw.calls[0] != "POST /users" {
		t.Errorf("call = %q", gw.calls[0])
	}
}

func TestProbeNoToken(t *testing.T) {
	gw := &scriptedGateway{}
	k, st, _ := newKeeper(gw)

	if err := k.Probe(context.Background()); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if st.Session().State != domain.StateIdle {
		t.Errorf("session = %+v, want idle", st.Session())
	}
	if len(gw.calls) != 0 {
		t.Error("probe issued a request without a token")
	}
}

func TestProbeSuccess(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{OK: true, Status: 200, Body: []byte(`{"user":` + userJSON + `}`)},
	}}
	k, st, tokens := newKeeper(gw)
	_ = tokens.Save("jwt-saved")

	if err := k.Probe(context.Background()); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	sess := st.Session()
	if !sess.LoggedIn() || sess.Token != "jwt-saved" {
		t.Errorf("session = %+v, want authenticated with saved token", sess)
	}
	if gw.calls[0] != "GET /users/session" || gw.tokens[0] != "jwt-saved" {
		t.Errorf("call = %q token = %q", gw.calls[0], gw.tokens[0])
	}
}

func TestProbeExpiredTokenResets(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{Status: 401, Err: "authentication required"},
	}}
	k, st, tokens := newKeeper(gw)
	_ = tokens.Save("jwt-stale")

	// An expired token at bootstrap is the expected path, not an error.
	if err := k.Probe(context.Background()); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	sess := st.Session()
	if sess.State != domain.StateIdle || sess.Token != "" {
		t.Errorf("session = %+v, want idle", sess)
	}
	if got, _ := tokens.Load(); got != "" {
		t.Errorf("stale token survived probe: %q", got)
	}
}

func TestProbeServerErrorResets(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{Status: 500, Err: "server error"},
	}}
	k, _, tokens := newKeeper(gw)
	_ = tokens.Save("jwt")

	err := k.Probe(context.Background())
	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("Probe() error = %v, want ErrServer", err)
	}
	if got, _ := tokens.Load(); got != "" {
		t.Error("token survived failed probe")
	}
}

func TestLogout(t *testing.T) {
	gw := &scriptedGateway{responses: []ports.Response{
		{OK: true, Status: 200, Body: []byte(`{"token":"jwt-abc","user":` + userJSON + `}`)},
	}}
	k, st, tokens := newKeeper(gw)
	if err := k.Login(context.Background(), ports.Credentials{Username: "kevin", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	if err := k.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if st.Session().State != domain.StateIdle {
		t.Errorf("session = %+v, want idle", st.Session())
	}
	if got, _ := tokens.Load(); got != "" {
		t.Error("token survived logout")
	}
}

func TestHandleUnauthorized(t *testing.T) {
	gw := &scriptedGateway{}
	k, st, tokens := newKeeper(gw)
	_ = tokens.Save("jwt")
	st.SetSession(domain.Session{State: domain.StateAuthenticated, Token: "jwt"})

	k.HandleUnauthorized()

	sess := st.Session()
	if sess.State != domain.StateIdle || sess.Error != "session expired" {
		t.Errorf("session = %+v, want idle with session expired", sess)
	}
	if got, _ := tokens.Load(); got != "" {
		t.Error("token survived unauthorized reset")
	}
}
