package cli

import (
	"context"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the signup fields and creates an account. The
// generated account number is printed; it is what the user logs in with.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	mobile, err := getSimpleText(a.reader, "Enter mobile number (10 digits)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.api.Register(ctx, name, email, mobile, password)
	if err != nil {
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	printlnFn("Account created. Your account number is " + user.ID)
	return nil
}

// Login prompts for the account number and password and authenticates.
func (a *App) Login(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "Enter account number (PS-XXXXX)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.api.Login(ctx, userID, password)
	if err != nil {
		log.Printf("Login failed: %s", err.Error())
		return err
	}

	a.user = user
	printlnFn("Welcome back, " + user.Name + "!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	a.user = nil
	printlnFn("Logged out.")
	return nil
}

// Whoami fetches and prints the current session account.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.api.Session(ctx)
	if err != nil {
		log.Printf("Session check failed: %s", err.Error())
		return err
	}

	a.user = user
	tier := "free"
	if user.Premium {
		tier = "premium"
	}
	printlnFn(user.ID + " " + user.Name + " (" + tier + ", joined " + user.JoinedAt + ")")
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
