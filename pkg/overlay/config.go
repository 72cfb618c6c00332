package overlay

// Config holds user options for rendering an alignment overlay
type Config struct {
	ShowText  bool    // Draw word text inside the boxes
	DotRadius float64 // Radius of a gaze sample dot in screen pixels
	Margin    float64 // Blank border around the page content
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ShowText:  true,
		DotRadius: 3,
		Margin:    20,
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for word text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont is Helvetica, a core PDF font that needs no embedding
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

// fallbackWidth and fallbackHeight size pages of documents without geometry
const (
	fallbackWidth  = 800
	fallbackHeight = 600
)
