package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/portraitstudio/internal/client/api"
	"github.com/dmitrijs2005/portraitstudio/internal/client/config"
)

// backend is the slice of the API client the commands use. Tests provide a
// stub; the real App wires *api.Client.
type backend interface {
	LoggedIn() bool
	Register(ctx context.Context, name, email, mobile string, password []byte) (*api.User, error)
	Login(ctx context.Context, userID string, password []byte) (*api.User, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*api.User, error)
	Redeem(ctx context.Context, code string) (*api.User, error)
	Styles(ctx context.Context) ([]api.StyleGroup, error)
	Generate(ctx context.Context, subject []byte, mime, styleID string) (*api.GenerateResult, error)
	Gallery(ctx context.Context) ([]api.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error
	Chat(ctx context.Context, message string) (string, error)
	Crop(ctx context.Context, image []byte, mime, presetID string) ([]byte, error)
	Watermark(ctx context.Context, image []byte, mime, text string) ([]byte, error)
	QR(ctx context.Context, data string) ([]byte, error)
	SOP(ctx context.Context) ([]byte, error)
	Certificate(ctx context.Context) ([]byte, error)
}

type App struct {
	config *config.Config
	api    backend
	user   *api.User
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.New(c.ServerBaseURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	s := a.user.ID
	if a.user.Premium {
		s += " premium"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to Portrait Studio CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
