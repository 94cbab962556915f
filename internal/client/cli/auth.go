package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSimpleTextDefault = GetSimpleTextDefault
var getPassword = GetPassword

// Signup prompts for the signup form fields and creates a new account.
// A successful signup leaves the user signed in.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.authService.Signup(ctx, api.SignupRequest{
		Email:    email,
		FullName: fullName,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", p.Username)
	return nil
}

// Login prompts for credentials and signs in. The previously used email is
// offered as the default.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleTextDefault(a.reader, "Enter email", a.authService.SavedEmail(ctx), os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome back, %s!\n", p.Username)
	return nil
}

// Otp signs in with a one-time email code: requests the code, then prompts
// for it and verifies.
func (a *App) Otp(ctx context.Context) error {
	email, err := getSimpleTextDefault(a.reader, "Enter email", a.authService.SavedEmail(ctx), os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.authService.SendOTP(ctx, email)
	if err != nil {
		return err
	}
	fmt.Println(msg)

	code, err := getSimpleText(a.reader, "Enter the code from your email", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.authService.VerifyOTP(ctx, email, code)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", p.Username)
	return nil
}

// Whoami shows the signed-in account.
func (a *App) Whoami(ctx context.Context) error {
	p := a.authService.Current()
	if p == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("Signed in as %s <%s>\n", p.FullName, p.Email)
	return nil
}

// Logout ends the session. The token is discarded locally even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}
