package cli

import (
	"context"
	"log"
	"os"
)

// Redeem prompts for a license code and upgrades the account to premium.
func (a *App) Redeem(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Enter license code (15 characters)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.Redeem(ctx, code)
	if err != nil {
		log.Printf("Redemption failed: %s", err.Error())
		return err
	}

	a.user = user
	printlnFn("Premium activated for " + user.ID + ". Enjoy!")
	return nil
}

// Chat sends one message to the style advisor and prints the reply.
func (a *App) Chat(ctx context.Context) error {
	message, err := getSimpleText(a.reader, "Ask the style advisor", os.Stdout)
	if err != nil {
		return err
	}

	reply, err := a.api.Chat(ctx, message)
	if err != nil {
		log.Printf("Advisor unavailable: %s", err.Error())
		return err
	}

	printlnFn(reply)
	return nil
}
