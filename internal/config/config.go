package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/markcorrect/internal/engine"
	"github.com/example/markcorrect/internal/geom"
)

// Marks holds sizes, in pixels. Touch sizes are view pixels; text and
// stroke sizes are content pixels at mark scale 1.
type Marks struct {
	TextSize       float64
	StrokeWidth    float64
	TouchOffset    float64
	TouchSlop      float64
	ButtonSize     float64
	SelectionWidth float64
}

// Colors holds the ink and handle colours.
type Colors struct {
	Ink          color.RGBA
	Selection    color.RGBA
	DeleteButton color.RGBA
	DragButton   color.RGBA
}

// Config holds the application configuration.
type Config struct {
	MaxImageSize int
	Marks        Marks
	Colors       Colors
}

// New creates a new Config with defaults.
func New() *Config {
	s := engine.DefaultSettings()
	return &Config{
		MaxImageSize: s.MaxImageSize,
		Marks: Marks{
			TextSize:       s.Style.TextSize,
			StrokeWidth:    s.Style.StrokeWidth,
			TouchOffset:    s.TouchOffset,
			TouchSlop:      s.TouchSlop,
			ButtonSize:     s.ButtonSize,
			SelectionWidth: s.SelectionWidth,
		},
		Colors: Colors{
			Ink:          s.Style.Ink,
			Selection:    s.Selection,
			DeleteButton: s.DeleteButton,
			DragButton:   s.DragButton,
		},
	}
}

// Settings converts the configuration into engine settings.
func (c *Config) Settings() engine.Settings {
	s := engine.DefaultSettings()
	s.MaxImageSize = c.MaxImageSize
	s.Style.TextSize = c.Marks.TextSize
	s.Style.StrokeWidth = c.Marks.StrokeWidth
	s.Style.Ink = c.Colors.Ink
	s.TouchOffset = c.Marks.TouchOffset
	s.TouchSlop = c.Marks.TouchSlop
	s.ButtonSize = c.Marks.ButtonSize
	s.SelectionWidth = c.Marks.SelectionWidth
	s.Selection = c.Colors.Selection
	s.DeleteButton = c.Colors.DeleteButton
	s.DragButton = c.Colors.DragButton
	// Symbol boxes follow the text size so a restyle keeps proportions.
	k := c.Marks.TextSize / engine.DefaultSettings().Style.TextSize
	if k > 0 && k != 1 {
		s.Style.RightSize = geom.Size{W: s.Style.RightSize.W * k, H: s.Style.RightSize.H * k}
		s.Style.WrongSize = geom.Size{W: s.Style.WrongSize.W * k, H: s.Style.WrongSize.H * k}
	}
	return s
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "max_image_size = %d\n", c.MaxImageSize)
	sb.WriteString("\n")

	sb.WriteString("[marks]\n")
	fmt.Fprintf(&sb, "text_size = %g\n", c.Marks.TextSize)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Marks.StrokeWidth)
	fmt.Fprintf(&sb, "touch_offset = %g\n", c.Marks.TouchOffset)
	fmt.Fprintf(&sb, "touch_slop = %g\n", c.Marks.TouchSlop)
	fmt.Fprintf(&sb, "button_size = %g\n", c.Marks.ButtonSize)
	fmt.Fprintf(&sb, "selection_width = %g\n", c.Marks.SelectionWidth)
	sb.WriteString("\n")

	sb.WriteString("[colors]\n")
	fmt.Fprintf(&sb, "ink = %s\n", toHex(c.Colors.Ink))
	fmt.Fprintf(&sb, "selection = %s\n", toHex(c.Colors.Selection))
	fmt.Fprintf(&sb, "delete_button = %s\n", toHex(c.Colors.DeleteButton))
	fmt.Fprintf(&sb, "drag_button = %s\n", toHex(c.Colors.DragButton))

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
