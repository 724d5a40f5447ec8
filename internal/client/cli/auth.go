package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/state"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for an email, a password and its confirmation and creates
// the account. Validation problems are listed field by field; server
// failures are already shown as an alert by the session holder.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	res := a.session.SignUp(ctx, state.SignUpForm{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	return a.afterAuth(ctx, res)
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.afterAuth(ctx, a.session.SignIn(ctx, email, string(password)))
}

func (a *App) afterAuth(ctx context.Context, res state.Result[*models.Session]) error {
	if res.Err != nil {
		a.printValidation(res.Err)
		return res.Err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", a.currentUser().Email)
	a.refresh(ctx)
	return nil
}

func (a *App) printValidation(err error) {
	var v *state.ValidationError
	if !errors.As(err, &v) {
		return
	}

	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintln(a.out, v.Fields[f])
	}
}

// Logout signs out. Local session and notes are gone even if the server
// could not be reached.
func (a *App) Logout(ctx context.Context) error {
	res := a.session.SignOut(ctx)
	a.Mode = ""
	fmt.Fprintln(a.out, "Signed out")
	return res.Err
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.currentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (id %s)\n", u.Email, u.ID)
	return nil
}

func (a *App) currentUser() *models.User {
	return a.store.Snapshot().Auth.User
}
