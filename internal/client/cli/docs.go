package cli

import (
	"context"
	"log"

	"github.com/dmitrijs2005/portraitstudio/internal/filex"
)

// downloadsDir is where fetched PDF documents land, relative to the
// working directory.
const downloadsDir = "downloads"

// SOP downloads the photo session guide PDF.
func (a *App) SOP(ctx context.Context) error {
	data, err := a.api.SOP(ctx)
	if err != nil {
		log.Printf("Download failed: %s", err.Error())
		return err
	}
	return a.saveDoc("photo-session-sop.pdf", data)
}

// Certificate downloads the membership certificate PDF for the current
// account.
func (a *App) Certificate(ctx context.Context) error {
	data, err := a.api.Certificate(ctx)
	if err != nil {
		log.Printf("Download failed: %s", err.Error())
		return err
	}
	return a.saveDoc("membership-certificate.pdf", data)
}

func (a *App) saveDoc(name string, data []byte) error {
	dir, err := filex.EnsureSubDir(downloadsDir)
	if err != nil {
		log.Printf("Cannot prepare %s: %s", downloadsDir, err.Error())
		return err
	}

	path, err := filex.SaveTo(dir, name, data)
	if err != nil {
		log.Printf("Cannot save %s: %s", name, err.Error())
		return err
	}

	printlnFn("Saved " + path)
	return nil
}
