package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/photoshare/internal/client/feed"
	"github.com/dmitrijs2005/photoshare/internal/client/models"
	"github.com/dmitrijs2005/photoshare/internal/client/session"
	"github.com/dmitrijs2005/photoshare/internal/logging"
)

// fakeAuth implements services.AuthService over a real session.Machine so
// the CLI sees consistent state.
type fakeAuth struct {
	state *session.Machine

	signUpErr  error
	signInErr  error
	restoreErr error
	logoutErr  error
	updateErr  error

	// authedOnErr applies the profile before returning signUpErr/signInErr,
	// as when only priming failed.
	authedOnErr bool

	// profile applied on successful sign-in/sign-up/restore
	me  models.Profile
	all []models.Profile

	lastEmail    string
	lastPassword []byte
	lastNick     string
	lastImg      *models.ProfileImage
	calls        []string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		state: session.NewMachine(),
		me:    models.Profile{ID: 7, NickName: "anonymous", OwnerUserID: 1, CreatedAt: "2021-01-01"},
		all:   []models.Profile{{ID: 3, NickName: "bob", OwnerUserID: 2}, {ID: 7, NickName: "anonymous", OwnerUserID: 1}},
	}
}

func (f *fakeAuth) signedIn() {
	f.state.SetMyProfile(f.me)
	f.state.SetAllProfiles(f.all)
}

func (f *fakeAuth) SignUp(_ context.Context, email string, pw []byte) error {
	f.calls = append(f.calls, "signup")
	f.lastEmail, f.lastPassword = email, append([]byte(nil), pw...)
	f.state.CloseSignUp()
	if f.signUpErr != nil {
		if f.authedOnErr {
			f.signedIn()
		}
		return f.signUpErr
	}
	f.signedIn()
	return nil
}

func (f *fakeAuth) SignIn(_ context.Context, email string, pw []byte) error {
	f.calls = append(f.calls, "signin")
	f.lastEmail, f.lastPassword = email, append([]byte(nil), pw...)
	f.state.CloseSignIn()
	if f.signInErr != nil {
		if f.authedOnErr {
			f.signedIn()
		}
		return f.signInErr
	}
	f.signedIn()
	return nil
}

func (f *fakeAuth) Restore(context.Context) error {
	f.calls = append(f.calls, "restore")
	if f.restoreErr != nil {
		return f.restoreErr
	}
	f.signedIn()
	return nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.state.Reset()
	return nil
}

func (f *fakeAuth) OpenProfileEditor() {
	f.calls = append(f.calls, "open profile")
	f.state.OpenProfile()
}

func (f *fakeAuth) UpdateProfile(_ context.Context, nick string, img *models.ProfileImage) error {
	f.calls = append(f.calls, "update profile")
	f.lastNick, f.lastImg = nick, img
	f.state.CloseProfile()
	if f.updateErr != nil {
		return f.updateErr
	}
	p := f.state.Snapshot().MyProfile
	p.NickName = nick
	f.state.UpdateMyProfileInPlace(p)
	return nil
}

func (f *fakeAuth) SwitchToSignUp() {
	f.state.CloseSignIn()
	f.state.OpenSignUp()
}

func (f *fakeAuth) SwitchToSignIn() {
	f.state.CloseSignUp()
	f.state.OpenSignIn()
}

func (f *fakeAuth) State() session.State { return f.state.Snapshot() }

func newTestApp(f *fakeAuth, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService: f,
		feed:        feed.NewStore(),
		log:         logging.Discard(),
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         &out,
	}, &out
}

// stubInputs replaces the interactive prompts for the duration of the test.
func stubInputs(t *testing.T, lines []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		l := lines[0]
		lines = lines[1:]
		return l, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
}

// capturePrintln collects printlnFn output.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}
