package cli

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Generate prompts for a photo path and a style ID, submits the generation
// request and reports the saved gallery item.
func (a *App) Generate(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to your photo", os.Stdout)
	if err != nil {
		return err
	}

	subject, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read %s: %s", path, err.Error())
		return err
	}

	styleID, err := getSimpleText(a.reader, "Style ID (see 'styles')", os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Generating, this can take a while...")
	result, err := a.api.Generate(ctx, subject, mimeByExt(path), styleID)
	if err != nil {
		log.Printf("Generation failed: %s", err.Error())
		return err
	}

	printlnFn("Saved to gallery as " + result.Item.ID + " (" + result.Item.StyleName + ")")
	if result.ArchiveURL != "" {
		printlnFn("Original archived at " + result.ArchiveURL)
	}
	return nil
}

// Styles prints the catalog grouped by category.
func (a *App) Styles(ctx context.Context) error {
	groups, err := a.api.Styles(ctx)
	if err != nil {
		log.Printf("Cannot load styles: %s", err.Error())
		return err
	}

	for _, g := range groups {
		printlnFn(g.Category + ":")
		for _, s := range g.Options {
			tier := ""
			if s.Premium {
				tier = " [premium]"
			}
			printlnFn("  " + s.ID + tier + " - " + s.Description)
		}
	}
	return nil
}

func mimeByExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
