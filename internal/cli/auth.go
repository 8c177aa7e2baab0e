package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/deployhq/internal/common"
	"github.com/dmitrijs2005/deployhq/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getList       = GetList
)

const minPasswordLen = 6

var (
	errMissingFields    = errors.New("please fill in all fields")
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordTooShort = errors.New("password must be at least 6 characters long")
	errNotLoggedIn      = errors.New("you are not logged in")
)

// Login prompts for credentials and signs in through the session store.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	u, _ := a.session.CurrentUser()
	a.printf("Welcome back, %s!\n", u.Name)
	return nil
}

// Signup collects the signup form. Field presence, password confirmation and
// length are checked here; email uniqueness is the store's job.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	roleText, err := getSimpleText(a.reader, "Role (user|builder) [user]", a.out)
	if err != nil {
		return err
	}

	switch {
	case name == "" || email == "" || len(password) == 0 || len(confirm) == 0:
		return errMissingFields
	case string(password) != string(confirm):
		return errPasswordMismatch
	case len(password) < minPasswordLen:
		return errPasswordTooShort
	}

	role := models.RoleUser
	if roleText != "" {
		role = models.Role(strings.ToLower(roleText))
	}

	if err := a.session.Signup(ctx, email, string(password), name, role); err != nil {
		return err
	}

	a.printf("Account created. Signed in as %s (%s).\n", email, role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	u, ok := a.session.CurrentUser()
	if !ok {
		return errNotLoggedIn
	}
	a.printf("%s <%s>\n", u.Name, u.Email)
	a.printf("  role:    %s\n", u.Role)
	if u.Company != "" {
		a.printf("  company: %s\n", u.Company)
	}
	a.printf("  since:   %s\n", u.CreatedAt)
	return nil
}
