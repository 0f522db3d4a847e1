package sdkconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeINI(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdk_config.ini")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "sdk_config.ini"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_SingleRobot(t *testing.T) {
	path := writeINI(t, `[00e20100]
cert = /home/user/.anki_vector/Vector-A1B2-00e20100.cert
ip = 192.168.1.37
name = Vector-A1B2
guid = abc==
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Robots) != 1 {
		t.Fatalf("len(Robots) = %d, want 1", len(cfg.Robots))
	}

	r := cfg.Robots[0]
	if r.Serial != "00e20100" || r.IP != "192.168.1.37" || r.Name != "Vector-A1B2" {
		t.Errorf("robot = %+v", r)
	}
}

func TestLoad_NoSections(t *testing.T) {
	path := writeINI(t, "ip = 10.0.0.1\n")

	_, err := Load(path)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestConfig_Robot(t *testing.T) {
	path := writeINI(t, `[00aaaaaa]
ip = 10.0.0.1

[00bbbbbb]
ip = 10.0.0.2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name   string
		serial string
		wantIP string
	}{
		{"exact match", "00bbbbbb", "10.0.0.2"},
		{"unknown serial falls back to first", "00cccccc", "10.0.0.1"},
		{"empty serial falls back to first", "", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cfg.Robot(tt.serial)
			if r == nil || r.IP != tt.wantIP {
				t.Errorf("Robot(%q) = %+v, want ip %s", tt.serial, r, tt.wantIP)
			}
		})
	}
}

func TestConfig_RobotNil(t *testing.T) {
	var cfg *Config
	if cfg.Robot("x") != nil {
		t.Error("nil config should return nil robot")
	}
}
