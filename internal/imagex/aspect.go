package imagex

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Preset is a named target resolution for social exports.
type Preset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Presets lists the supported social crop targets.
var Presets = []Preset{
	{ID: "instagram-story", Name: "Instagram Story", Width: 1080, Height: 1920},
	{ID: "instagram-post", Name: "Instagram Post", Width: 1080, Height: 1080},
	{ID: "linkedin-banner", Name: "LinkedIn Banner", Width: 1584, Height: 396},
	{ID: "linkedin-post", Name: "LinkedIn Post", Width: 1200, Height: 1200},
	{ID: "x-header", Name: "X Header", Width: 1500, Height: 500},
	{ID: "facebook-cover", Name: "Facebook Cover", Width: 820, Height: 312},
	{ID: "youtube-thumbnail", Name: "YouTube Thumbnail", Width: 1280, Height: 720},
}

// PresetByID finds a preset.
func PresetByID(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// CropToAspect center-crops img to the target aspect ratio and scales it to
// exactly width x height.
func CropToAspect(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos), nil
}
