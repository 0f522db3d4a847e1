// Package sdkconfig reads the Vector SDK configuration file
// (~/.anki_vector/sdk_config.ini). The file holds one section per robot
// serial:
//
//	[00e20100]
//	cert = /home/user/.anki_vector/Vector-A1B2-00e20100.cert
//	ip = 192.168.1.37
//	name = Vector-A1B2
//	guid = ...
//
// The scanner only reads this file. Writing the address back is the job of
// the SDK's own configure tool (see package push).
package sdkconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrNotFound is returned when the file does not exist or holds no robot.
var ErrNotFound = errors.New("sdk config not found")

// Robot is one robot section of the SDK config.
type Robot struct {
	Serial string
	IP     string
	Name   string
}

// Config is the parsed SDK config.
type Config struct {
	Path   string
	Robots []Robot
}

// Load parses the SDK config at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrNotFound
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sdk config %s: %w", path, err)
	}

	cfg := &Config{Path: path}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		cfg.Robots = append(cfg.Robots, Robot{
			Serial: strings.TrimSpace(section.Name()),
			IP:     strings.TrimSpace(section.Key("ip").String()),
			Name:   strings.TrimSpace(section.Key("name").String()),
		})
	}

	if len(cfg.Robots) == 0 {
		return nil, ErrNotFound
	}

	return cfg, nil
}

// Robot returns the section for serial. When serial is empty or unknown the
// first section is returned, matching how the SDK picks a default robot.
func (c *Config) Robot(serial string) *Robot {
	if c == nil || len(c.Robots) == 0 {
		return nil
	}
	for i := range c.Robots {
		if c.Robots[i].Serial == serial {
			return &c.Robots[i]
		}
	}
	return &c.Robots[0]
}
