package cli

import (
	"context"
	"log"
	"os"
)

// Gallery lists saved portraits, newest first.
func (a *App) Gallery(ctx context.Context) error {
	items, err := a.api.Gallery(ctx)
	if err != nil {
		log.Printf("Cannot load gallery: %s", err.Error())
		return err
	}

	if len(items) == 0 {
		printlnFn("Gallery is empty.")
		return nil
	}

	for _, item := range items {
		printlnFn(item.ID + "  " + item.StyleName + "  " + item.CreatedAt)
	}
	return nil
}

// Delete removes one portrait by its ID.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Portrait ID to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteGalleryItem(ctx, id); err != nil {
		log.Printf("Delete failed: %s", err.Error())
		return err
	}

	printlnFn("Deleted.")
	return nil
}
