package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photoshare/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// SignUp switches to the sign-up form, reads credentials and runs the
// registration chain. The password is wiped before returning.
func (a *App) SignUp(ctx context.Context) error {
	a.authService.SwitchToSignUp()

	email, password, err := a.readCredentials()
	if err != nil {
		a.authService.SwitchToSignIn()
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.SignUp(ctx, email, password); err != nil {
		if !a.isLoggedIn() {
			a.authService.SwitchToSignIn()
		}
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.authService.State().MyProfile.NickName)
	return nil
}

// SignIn reads credentials and signs in. The password is wiped before
// returning.
func (a *App) SignIn(ctx context.Context) error {
	a.authService.SwitchToSignIn()

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.SignIn(ctx, email, password); err != nil {
		if !a.isLoggedIn() {
			a.authService.SwitchToSignIn()
		}
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", a.authService.State().MyProfile.NickName)
	return nil
}

// Logout drops the stored token and the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
