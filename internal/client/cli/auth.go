package cli

import (
	"context"

	"github.com/dmitrijs2005/signlink/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for email and password and signs in through the controller.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	return a.ctrl.Login(ctx, email, password)
}

// Signup collects the registration form. Validation happens in the session
// service so the rules are the same for every front end.
func (a *App) Signup(ctx context.Context) error {
	var form models.SignupForm

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter username", &form.Username},
		{"Enter email", &form.Email},
		{"Enter first name (optional)", &form.FirstName},
		{"Enter last name (optional)", &form.LastName},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	form.Password = password

	return a.ctrl.Signup(ctx, form)
}

func (a *App) Logout(ctx context.Context) error {
	return a.ctrl.Logout(ctx)
}
