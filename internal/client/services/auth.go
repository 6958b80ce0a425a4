// Package services contains the client's application services.
//
// AuthService drives the session bootstrap: it validates credentials, runs the
// register/login chain against the API, stores the token and primes the
// session with profiles and feed data. It is the only writer of the token
// (login and logout) and the only caller of the session Machine's auth
// transitions.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photoshare/internal/client/client"
	"github.com/dmitrijs2005/photoshare/internal/client/credstore"
	"github.com/dmitrijs2005/photoshare/internal/client/models"
	"github.com/dmitrijs2005/photoshare/internal/client/session"
	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/dmitrijs2005/photoshare/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/photoshare/internal/client/services"

// Workflow names, used for span names and the "workflow" log field.
const (
	WorkflowSignUp        = "signup"
	WorkflowSignIn        = "signin"
	WorkflowRestore       = "restore"
	WorkflowUpdateProfile = "update_profile"
	WorkflowLogout        = "logout"
)

// AuthService is the surface the CLI drives.
//
// SignUp and SignIn wipe password before returning, whatever the outcome.
// Every method honours ctx cancellation through the API calls it makes.
type AuthService interface {
	SignUp(ctx context.Context, email string, password []byte) error
	SignIn(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) error
	Logout(ctx context.Context) error
	OpenProfileEditor()
	UpdateProfile(ctx context.Context, nickName string, img *models.ProfileImage) error
	SwitchToSignUp()
	SwitchToSignIn()
	State() session.State
}

// FeedReader loads the data that depends on a ready session.
type FeedReader interface {
	FetchAllPosts(ctx context.Context) error
	FetchAllComments(ctx context.Context) error
	Reset()
}

type authService struct {
	api    client.Client
	tokens credstore.Store
	state  *session.Machine
	feed   FeedReader
	log    logging.Logger
	tracer trace.Tracer
}

// Option customises the service.
type Option func(*authService)

// WithTracerProvider sets where workflow spans go. The global provider is used
// otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *authService) { a.tracer = tp.Tracer(tracerName) }
}

func NewAuthService(api client.Client, tokens credstore.Store, state *session.Machine, feed FeedReader, log logging.Logger, opts ...Option) AuthService {
	a := &authService{
		api:    api,
		tokens: tokens,
		state:  state,
		feed:   feed,
		log:    log,
		tracer: otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// run is one workflow execution: a span plus a logger tagged with a fresh run id.
type run struct {
	ctx  context.Context
	span trace.Span
	log  logging.Logger
}

func (a *authService) start(ctx context.Context, workflow string) *run {
	id := uuid.NewString()
	ctx, span := a.tracer.Start(ctx, "auth."+workflow,
		trace.WithAttributes(attribute.String("workflow", workflow), attribute.String("run_id", id)))
	return &run{ctx: ctx, span: span, log: a.log.With("run_id", id, "workflow", workflow)}
}

// step logs and records a finished step, wrapping err with the step name.
func (r *run) step(name string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.span.AddEvent(name)
	r.log.Debug(r.ctx, "step done", "step", name)
	return nil
}

func (r *run) finish(err error) {
	defer r.span.End()
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
		r.log.Error(r.ctx, "workflow failed", "error", err)
		return
	}
	r.span.SetStatus(codes.Ok, "")
	r.log.Info(r.ctx, "workflow finished")
}

// SignUp registers an account, signs into it, creates the default profile
// and primes the session. The sign-up modal is closed afterwards on every
// path; sign-in is left as is.
func (a *authService) SignUp(ctx context.Context, email string, password []byte) (err error) {
	defer common.WipeByteArray(password)

	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if !a.state.TryBeginAuthPending() {
		return ErrAuthInProgress
	}

	r := a.start(ctx, WorkflowSignUp)
	defer func() {
		a.endAuth(err)
		a.state.CloseSignUp()
		r.finish(err)
	}()
	a.state.ClearAuthError()

	creds := models.Credentials{Email: email, Password: string(password)}

	_, err = a.api.Register(r.ctx, creds)
	if err = r.step("register", err); err != nil {
		return err
	}
	if err = a.login(r, creds); err != nil {
		return err
	}

	p, err := a.api.CreateProfile(r.ctx, common.DefaultNickName)
	if err = r.step("create profile", err); err != nil {
		return err
	}
	a.state.SetMyProfile(p)

	return r.step("prime", a.prime(r.ctx))
}

// SignIn logs in with existing credentials and primes the session. The
// sign-in modal is closed afterwards on every path.
func (a *authService) SignIn(ctx context.Context, email string, password []byte) (err error) {
	defer common.WipeByteArray(password)

	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if !a.state.TryBeginAuthPending() {
		return ErrAuthInProgress
	}

	r := a.start(ctx, WorkflowSignIn)
	defer func() {
		a.endAuth(err)
		a.state.CloseSignIn()
		r.finish(err)
	}()
	a.state.ClearAuthError()

	if err = a.login(r, models.Credentials{Email: email, Password: string(password)}); err != nil {
		return err
	}
	return r.step("prime", a.prime(r.ctx))
}

// login obtains a token and persists it. Nothing is stored when the API
// refuses.
func (a *authService) login(r *run, creds models.Credentials) error {
	token, err := a.api.Login(r.ctx, creds)
	if err := r.step("login", err); err != nil {
		return err
	}
	return r.step("save token", a.tokens.Save(r.ctx, token))
}

func (a *authService) endAuth(err error) {
	if err != nil {
		a.state.SetAuthError(err)
	}
	a.state.EndAuthPending()
}

// Restore primes the session from a token stored by an earlier run. With no
// token it returns credstore.ErrTokenNotFound and leaves the state alone. It
// holds the submission lock while running.
func (a *authService) Restore(ctx context.Context) (err error) {
	if !a.state.TryBeginAuthPending() {
		return ErrAuthInProgress
	}
	defer a.state.EndAuthPending()

	if _, err := a.tokens.Load(ctx); err != nil {
		return err
	}

	r := a.start(ctx, WorkflowRestore)
	defer func() { r.finish(err) }()

	if err = r.step("prime", a.prime(r.ctx)); err != nil {
		return err
	}
	if a.state.Snapshot().Authenticated() {
		a.state.CloseSignIn()
		a.state.CloseSignUp()
	}
	return nil
}

// Logout forgets the token, the cached feed and the session state. It holds
// the submission lock until the state is reset, so no sign-in can interleave.
func (a *authService) Logout(ctx context.Context) (err error) {
	if !a.state.TryBeginAuthPending() {
		return ErrAuthInProgress
	}

	r := a.start(ctx, WorkflowLogout)
	defer func() { r.finish(err) }()

	if err = r.step("clear token", a.tokens.Clear(r.ctx)); err != nil {
		a.state.EndAuthPending()
		return err
	}
	a.feed.Reset()
	// Reset also clears the pending flag.
	a.state.Reset()
	return nil
}

func (a *authService) SwitchToSignUp() {
	a.state.CloseSignIn()
	a.state.OpenSignUp()
}

func (a *authService) SwitchToSignIn() {
	a.state.CloseSignUp()
	a.state.OpenSignIn()
}

func (a *authService) State() session.State {
	return a.state.Snapshot()
}

// IsUnauthorized reports whether err means the stored token is missing or no
// longer accepted.
func IsUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized) || errors.Is(err, credstore.ErrTokenNotFound)
}
