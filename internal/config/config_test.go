package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
# tuned for a tablet
max_image_size = 2048

[marks]
text_size = 36
touch_slop: 12
stroke_width = "4.5"

[colors]
ink = #0000FF
selection = #00FF0080
drag_button = Orange

[unknown]
whatever = 1
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.MaxImageSize != 2048 {
		t.Errorf("Expected max_image_size 2048, got %d", cfg.MaxImageSize)
	}
	if cfg.Marks.TextSize != 36 || cfg.Marks.TouchSlop != 12 || cfg.Marks.StrokeWidth != 4.5 {
		t.Errorf("Unexpected marks: %+v", cfg.Marks)
	}
	if cfg.Marks.ButtonSize != 30 {
		t.Errorf("Missing key lost its default: button_size = %v", cfg.Marks.ButtonSize)
	}
	if cfg.Colors.Ink != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("Unexpected ink: %+v", cfg.Colors.Ink)
	}
	if cfg.Colors.Selection != (color.RGBA{G: 255, A: 0x80}) {
		t.Errorf("Unexpected selection: %+v", cfg.Colors.Selection)
	}
	if cfg.Colors.DragButton != (color.RGBA{R: 0xFF, G: 0xA5, A: 255}) {
		t.Errorf("Unexpected drag_button: %+v", cfg.Colors.DragButton)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"max_image_size = big",
		"max_image_size = -1",
		"[marks]\ntext_size = -3",
		"[colors]\nink = reddish",
		"[colors]\nink = #12345",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `max_image_size = 800

[marks]
text_size = 24
touch_offset = 14
selection_width = 2.5

[colors]
ink = #112233
drag_button = #44556677
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if *cfg != *cfg2 {
		t.Errorf("Config mismatch:\n%+v\n%+v", cfg, cfg2)
	}
}

func TestSettings(t *testing.T) {
	cfg := New()
	cfg.Marks.TextSize = 60
	cfg.Colors.Ink = color.RGBA{R: 1, G: 2, B: 3, A: 255}
	s := cfg.Settings()
	if s.Style.TextSize != 60 || s.Style.Ink != cfg.Colors.Ink {
		t.Errorf("Unexpected style: %+v", s.Style)
	}
	if s.Style.RightSize.W != 192 || s.Style.WrongSize.H != 80 {
		t.Errorf("Symbols did not follow text size: %+v %+v", s.Style.RightSize, s.Style.WrongSize)
	}
	if s.TouchSlop != cfg.Marks.TouchSlop || s.MaxImageSize != cfg.MaxImageSize {
		t.Errorf("Unexpected settings: %+v", s)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.rc")
	cfg := New()
	cfg.Marks.TouchSlop = 3
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Marks.TouchSlop != 3 {
		t.Errorf("Expected touch_slop 3, got %v", loaded.Marks.TouchSlop)
	}

	if err := os.WriteFile(path, []byte("[colors]\nink = nope\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(); err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error naming %s, got %v", path, err)
	}
}
