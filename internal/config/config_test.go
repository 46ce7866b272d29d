package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1200 || cfg.Window.Height != 800 {
		t.Errorf("expected 1200x800, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected backend sdl, got %s", cfg.Window.Backend)
	}

	if cfg.Scene.Precision != 48 {
		t.Errorf("expected precision 48, got %d", cfg.Scene.Precision)
	}
	if cfg.Scene.Camera != [3]float32{0, 0, 5} {
		t.Errorf("expected camera (0,0,5), got %v", cfg.Scene.Camera)
	}
	if cfg.Scene.SpinAxis != [3]float32{0, -1, 0} {
		t.Errorf("expected spin axis (0,-1,0), got %v", cfg.Scene.SpinAxis)
	}
	if cfg.Scene.DrawMode != DrawIndexed {
		t.Errorf("expected draw mode indexed, got %s", cfg.Scene.DrawMode)
	}
	if !cfg.Scene.FlipTextureY {
		t.Error("expected texture flip to be on by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  backend: glfw

scene:
  precision: 96
  texture: "assets/sun.png"
  draw_mode: arrays
  camera: [0, 1, 8]
  spin_speed: 0.5

capture:
  dir: "shots"

logging:
  level: "debug"
  format: json
  log_file: "sun.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.Backend != BackendGLFW {
		t.Errorf("expected backend glfw, got %s", cfg.Window.Backend)
	}

	if cfg.Scene.Precision != 96 {
		t.Errorf("expected precision 96, got %d", cfg.Scene.Precision)
	}
	if cfg.Scene.Texture != "assets/sun.png" {
		t.Errorf("expected texture assets/sun.png, got %s", cfg.Scene.Texture)
	}
	if cfg.Scene.DrawMode != DrawArrays {
		t.Errorf("expected draw mode arrays, got %s", cfg.Scene.DrawMode)
	}
	if cfg.Scene.Camera != [3]float32{0, 1, 8} {
		t.Errorf("expected camera (0,1,8), got %v", cfg.Scene.Camera)
	}
	if cfg.Scene.SpinSpeed != 0.5 {
		t.Errorf("expected spin speed 0.5, got %v", cfg.Scene.SpinSpeed)
	}
	// Untouched keys keep their defaults.
	if cfg.Scene.FOVDegrees != 60 {
		t.Errorf("expected default fov 60, got %v", cfg.Scene.FOVDegrees)
	}
	if cfg.Capture.Dir != "shots" || cfg.Capture.Prefix != "sun" {
		t.Errorf("unexpected capture config %+v", cfg.Capture)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.LogFile != "sun.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("scene:\n  precison: 12\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for misspelled key, got nil")
	}
}

func TestLoadFromFileCommentsOnly(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("# nothing here yet\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("comment-only file should load: %v", err)
	}
	if cfg.Scene.Precision != 48 {
		t.Errorf("defaults should be kept, got precision %d", cfg.Scene.Precision)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/sunsphere.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"unknown backend", func(c *Config) { c.Window.Backend = "x11" }},
		{"old OpenGL", func(c *Config) { c.Window.GLMajor, c.Window.GLMinor = 3, 2 }},
		{"zero precision", func(c *Config) { c.Scene.Precision = 0 }},
		{"unknown draw mode", func(c *Config) { c.Scene.DrawMode = "strips" }},
		{"flat fov", func(c *Config) { c.Scene.FOVDegrees = 180 }},
		{"far before near", func(c *Config) { c.Scene.Near, c.Scene.Far = 10, 1 }},
		{"limb darkening above one", func(c *Config) { c.Scene.LimbDarkening = 1.5 }},
		{"precision above index range", func(c *Config) { c.Scene.Precision = 1 << 16 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"defaults", func(c *Config) {}},
		{"sdl backend", func(c *Config) { c.Window.Backend = BackendSDL }},
		{"glfw backend", func(c *Config) { c.Window.Backend = BackendGLFW }},
		{"json logs", func(c *Config) { c.Logging.Level, c.Logging.Format = "debug", "json" }},
		{"empty log settings", func(c *Config) { c.Logging.Level, c.Logging.Format = "", "" }},
		{"largest precision", func(c *Config) { c.Scene.Precision = 1<<16 - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Scene.Precision = 12
	cfg.Window.Backend = BackendGLFW
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, saved %+v", loaded, cfg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSave_UserConfigPath(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME only applies on Unix-like systems")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "sunsphere", FileName)
	if got := UserConfigPath(); got != want {
		t.Fatalf("UserConfigPath() = %q, want %q", got, want)
	}

	cfg := Default()
	cfg.Scene.Precision = 96
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, want); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Scene.Precision != 96 {
		t.Errorf("precision = %d, want 96", loaded.Scene.Precision)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagPrecision = 128
				*flagTexture = "earth.png"
				*flagDrawMode = DrawArrays
				*flagBackend = BackendGLFW
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Precision != 128 {
					t.Errorf("expected precision 128, got %d", cfg.Scene.Precision)
				}
				if cfg.Scene.Texture != "earth.png" {
					t.Errorf("expected texture earth.png, got %s", cfg.Scene.Texture)
				}
				if cfg.Scene.DrawMode != DrawArrays {
					t.Errorf("expected draw mode arrays, got %s", cfg.Scene.DrawMode)
				}
				if cfg.Window.Backend != BackendGLFW {
					t.Errorf("expected backend glfw, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() {
				*flagPrecision = 0
				*flagTexture = ""
				*flagDrawMode = ""
				*flagBackend = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file, file beats default.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("scene:\n  precision: -3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}
