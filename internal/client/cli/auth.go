package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
	"github.com/dmitrijs2005/gophgive/internal/client/services"
	"github.com/dmitrijs2005/gophgive/internal/common"
)

// Login prompts for credentials on the Login screen. On success the gate
// is refreshed and the stack is reset to Home.
func (a *App) Login(ctx context.Context) error {
	a.toLogin(ctx)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, services.ErrCredentialsRequired) {
			a.notify(noticeError, "Error", "Email and password are required")
			return err
		}
		a.logger.Debug(ctx, "login failed", "error", err)
		a.notify(noticeError, "Login Failed", client.Message(err, "Invalid credentials"))
		return err
	}

	a.logger.Info(ctx, "logged in", "user_id", sess.UserID)
	a.notify(noticeSuccess, "Success", "Login successful!")

	a.gate.Refresh(ctx)
	return a.Home(ctx)
}

// Register prompts for name, email and password. On success the Register
// screen is replaced with Login.
func (a *App) Register(ctx context.Context) error {
	if cur := a.router.Current(); cur == nil || cur.Route != navigation.Register {
		if _, err := a.router.Navigate(ctx, navigation.Register, nil); err != nil {
			a.notify(noticeError, "Error", "Cannot open registration")
			return err
		}
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Choose password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		if errors.Is(err, services.ErrRegistrationFieldsRequired) {
			a.notify(noticeError, "Error", "Name, email and password are required")
			return err
		}
		a.notify(noticeError, "Registration Failed", client.Message(err, "Something went wrong"))
		return err
	}

	a.notify(noticeSuccess, "Success", "Registration successful! Please login.")
	if _, err := a.router.Replace(ctx, navigation.Login, nil); err != nil {
		a.logger.Warn(ctx, "cannot open login", "error", err)
	}
	return nil
}

// Logout clears the session and returns to Home.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		a.notify(noticeError, "Error", "Failed to logout")
		return err
	}

	a.gate.Refresh(ctx)
	a.notify(noticeSuccess, "Success", "Logged out successfully")
	_, err := a.open(ctx, navigation.Home)
	return err
}
