package cli

import (
	"context"

	"github.com/revumeapp/revume-cli/internal/client/api"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		if api.IsUnavailable(err) {
			printlnFn("The service looks asleep; retrying sign-in once it wakes...")
			a.retryWhenReady(func() {
				ctx := context.Background()
				if err := a.session.Login(ctx, email, string(password)); err != nil {
					printlnFn("Sign-in failed:", api.UserMessage(err))
					return
				}
				printlnFn("Signed in as", email)
				_ = a.engine.Refresh(ctx)
			})
			return nil
		}
		printlnFn("Sign-in failed:", api.UserMessage(err))
		return err
	}

	printlnFn("Signed in as", email)
	return a.Refresh(ctx)
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, string(password)); err != nil {
		if api.IsUnavailable(err) {
			printlnFn("The service looks asleep; retrying registration once it wakes...")
			a.retryWhenReady(func() {
				ctx := context.Background()
				if err := a.session.Register(ctx, email, string(password)); err != nil {
					printlnFn("Registration failed:", api.UserMessage(err))
					return
				}
				printlnFn("Registered and signed in as", email)
				_ = a.engine.Refresh(ctx)
			})
			return nil
		}
		printlnFn("Registration failed:", api.UserMessage(err))
		return err
	}

	printlnFn("Registered and signed in as", email)
	return a.Refresh(ctx)
}

// Logout clears everything client-side whether or not the server heard us:
// session, collection, criteria and any open detail view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.engine.Reset()
	a.setDetail("")
	printlnFn("Signed out.")
	return nil
}

// Refresh re-fetches the collection and reports classified failures.
func (a *App) Refresh(ctx context.Context) error {
	err := a.engine.Refresh(ctx)
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		a.setDetail("")
		printlnFn("Your session has expired, please sign in again.")
		return err
	}
	printlnFn("Could not load reviews:", api.UserMessage(err))
	return err
}
