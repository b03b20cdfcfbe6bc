// Package styles holds the immutable portrait style catalog. Entries are
// defined at compile time; only the synthetic custom-background style is
// built per request.
package styles

import "fmt"

// CustomBackgroundID marks the style produced from a user-uploaded backdrop.
const CustomBackgroundID = "custom-background"

// Option is one selectable portrait style.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Premium     bool   `json:"premium"`
}

// Category display order.
var Categories = []string{
	"Professional",
	"Political",
	"Casual",
	"Formal Events",
	"Cultural",
	"Creative",
	"Group Photos",
	"Social Media Status",
	"Profile Poses",
}

var catalog = []Option{
	{ID: "corporate-grey", Name: "Corporate Grey", Category: "Professional",
		Description: "Classic studio headshot on a neutral grey backdrop.",
		Prompt:      "professional corporate headshot, charcoal suit, soft key light, seamless grey studio backdrop"},
	{ID: "executive-office", Name: "Executive Office", Category: "Professional", Premium: true,
		Description: "Boardroom setting with a blurred skyline.",
		Prompt:      "executive portrait in a modern glass office, city skyline bokeh, tailored navy suit"},
	{ID: "linkedin-blue", Name: "LinkedIn Blue", Category: "Professional", Premium: true,
		Description: "Bright, approachable look for profile pages.",
		Prompt:      "bright approachable business portrait, light blue gradient backdrop, crisp white shirt"},

	{ID: "campaign-podium", Name: "Campaign Podium", Category: "Political",
		Description: "Confident pose at a podium with flag backdrop.",
		Prompt:      "statesmanlike portrait at a wooden podium, national flag softly blurred behind, formal attire"},
	{ID: "town-hall", Name: "Town Hall", Category: "Political", Premium: true,
		Description: "Warm candid look addressing an audience.",
		Prompt:      "candid portrait addressing a town hall audience, warm tungsten light, rolled-up sleeves"},

	{ID: "weekend-denim", Name: "Weekend Denim", Category: "Casual",
		Description: "Relaxed denim look with natural light.",
		Prompt:      "relaxed lifestyle portrait, denim jacket, golden hour window light, soft smile"},
	{ID: "coffee-shop", Name: "Coffee Shop", Category: "Casual", Premium: true,
		Description: "Cozy cafe scene with shallow depth of field.",
		Prompt:      "casual portrait in a cozy coffee shop, latte on the table, shallow depth of field"},

	{ID: "black-tie", Name: "Black Tie", Category: "Formal Events",
		Description: "Evening gala look in a tuxedo or gown.",
		Prompt:      "elegant black tie portrait, tuxedo with bow tie, ballroom chandelier bokeh"},
	{ID: "red-carpet", Name: "Red Carpet", Category: "Formal Events", Premium: true,
		Description: "Premiere night with camera flashes.",
		Prompt:      "glamorous red carpet portrait, step-and-repeat backdrop, paparazzi flash highlights"},

	{ID: "heritage-classic", Name: "Heritage Classic", Category: "Cultural",
		Description: "Traditional attire with rich fabric tones.",
		Prompt:      "dignified portrait in traditional attire, rich embroidered fabric, warm earthen backdrop"},
	{ID: "festival-lights", Name: "Festival Lights", Category: "Cultural", Premium: true,
		Description: "Festive scene with lanterns and string lights.",
		Prompt:      "festive portrait among glowing lanterns and string lights, celebratory attire"},

	{ID: "studio-neon", Name: "Studio Neon", Category: "Creative",
		Description: "Bold neon gels and hard shadows.",
		Prompt:      "creative studio portrait with magenta and cyan neon gels, hard rim light, dark background"},
	{ID: "oil-painting", Name: "Oil Painting", Category: "Creative", Premium: true,
		Description: "Painterly rendition with canvas texture.",
		Prompt:      "renaissance oil painting style portrait, visible brush strokes, dramatic chiaroscuro"},

	{ID: "team-lineup", Name: "Team Lineup", Category: "Group Photos",
		Description: "Subject framed for a composite team wall.",
		Prompt:      "uniform team headshot framing, consistent eye level, plain white backdrop for compositing"},
	{ID: "family-studio", Name: "Family Studio", Category: "Group Photos", Premium: true,
		Description: "Warm studio setup sized for group shots.",
		Prompt:      "warm family studio portrait, cream backdrop, soft umbrella lighting"},

	{ID: "status-minimal", Name: "Minimal Status", Category: "Social Media Status",
		Description: "Clean square crop with muted palette.",
		Prompt:      "minimal social media portrait, muted pastel backdrop, centered square composition"},
	{ID: "status-vivid", Name: "Vivid Status", Category: "Social Media Status", Premium: true,
		Description: "Saturated colors that pop in small feeds.",
		Prompt:      "vivid saturated portrait, bold complementary color backdrop, high micro-contrast"},

	{ID: "pose-three-quarter", Name: "Three-Quarter Turn", Category: "Profile Poses",
		Description: "Classic three-quarter angle with engaged eyes.",
		Prompt:      "three-quarter profile pose, shoulders angled, eyes to camera, butterfly lighting"},
	{ID: "pose-arms-crossed", Name: "Arms Crossed", Category: "Profile Poses", Premium: true,
		Description: "Confident stance with crossed arms.",
		Prompt:      "confident arms-crossed pose, slight lean toward camera, clean mid-grey backdrop"},
}

// All returns the full catalog in display order.
func All() []Option {
	out := make([]Option, len(catalog))
	copy(out, catalog)
	return out
}

// ByID finds a catalog entry.
func ByID(id string) (Option, bool) {
	for _, o := range catalog {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// ByCategory returns the entries of one category in catalog order.
func ByCategory(category string) []Option {
	var out []Option
	for _, o := range catalog {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}

// CustomBackground builds the synthetic style used when the caller uploads
// their own backdrop image. It is always premium.
func CustomBackground(description string) Option {
	return Option{
		ID:          CustomBackgroundID,
		Name:        "Custom Background",
		Category:    "Creative",
		Description: description,
		Prompt: fmt.Sprintf("portrait composited onto the provided background image; %s; "+
			"match subject lighting and color temperature to the backdrop", description),
		Premium: true,
	}
}
