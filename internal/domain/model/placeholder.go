package model

// PlaceholderKind selects the size and styling of a generated placeholder
// graphic shown when an image fails to load.
type PlaceholderKind string

const (
	PlaceholderBrand         PlaceholderKind = "brand"
	PlaceholderPodcast       PlaceholderKind = "podcast"
	PlaceholderTalk          PlaceholderKind = "talk"
	PlaceholderCollaboration PlaceholderKind = "collaboration"
)

// PlaceholderStyle is the geometry of one placeholder kind.
type PlaceholderStyle struct {
	Width, Height int
	Radius        int
	FontSize      int
	Label         string
	FillAlpha     float64
	TextAlpha     float64
}

var placeholderStyles = map[PlaceholderKind]PlaceholderStyle{
	PlaceholderBrand:         {Width: 164, Height: 80, Radius: 12, FontSize: 12, Label: "Brand", FillAlpha: 0.05, TextAlpha: 0.4},
	PlaceholderPodcast:       {Width: 304, Height: 171, Radius: 22, FontSize: 14, Label: "Podcast", FillAlpha: 0.1, TextAlpha: 0.6},
	PlaceholderTalk:          {Width: 384, Height: 216, Radius: 16, FontSize: 16, Label: "Talk", FillAlpha: 0.1, TextAlpha: 0.6},
	PlaceholderCollaboration: {Width: 350, Height: 100, Radius: 12, FontSize: 14, Label: "Brand", FillAlpha: 0.05, TextAlpha: 0.4},
}

// Style returns the geometry of k and whether k is known.
func (k PlaceholderKind) Style() (PlaceholderStyle, bool) {
	s, ok := placeholderStyles[k]
	return s, ok
}
