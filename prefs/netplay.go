// This file is part of Rollnet.
//
// Rollnet is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollnet is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollnet.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/paths"
)

// Sentinal error patterns.
const (
	LoadError   = "prefs: load: %v"
	SaveError   = "prefs: save: %v"
	InvalidPref = "prefs: invalid value for %s: %v"
	UnknownPref = "prefs: unknown preference (%s)"
	EnvError    = "prefs: environment: %v"
)

// DefaultsFile is the name of the preferences file in the resource directory.
const DefaultsFile = "netplay.yaml"

// EnvPrefix is prepended to the environment variable names of every field in
// the Netplay type.
const EnvPrefix = "ROLLNET_"

// Netplay preferences used by the host program.
type Netplay struct {
	// player slot. either 1 or 2
	Player int `yaml:"player" env:"PLAYER"`

	// remote host with optional port. ignored in loopback mode
	Remote string `yaml:"remote" env:"REMOTE"`

	// both peers on the local machine
	Loopback bool `yaml:"loopback" env:"LOOPBACK"`

	Port             int `yaml:"port" env:"PORT"`
	PredictionWindow int `yaml:"prediction_window" env:"PREDICTION_WINDOW"`

	// desync detection and state dumps
	Diagnostics bool   `yaml:"diagnostics" env:"DIAGNOSTICS"`
	DumpDir     string `yaml:"dump_dir" env:"DUMP_DIR"`

	// fraction of outgoing datagrams to drop. zero disables the lossy adapter
	PacketLoss float64 `yaml:"packet_loss" env:"PACKET_LOSS"`

	// ticks per second
	TickRate int `yaml:"tick_rate" env:"TICK_RATE"`

	// address of the prometheus metrics endpoint. empty to disable
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`

	// launch the runtime statistics server, if it has been compiled in
	Statsview bool `yaml:"statsview" env:"STATSVIEW"`
}

// NewNetplay returns the default preferences.
func NewNetplay() Netplay {
	return Netplay{
		Player:   1,
		Remote:   "127.0.0.1",
		Port:     50000,
		TickRate: 60,
	}
}

// Load preferences from the named file. If path is empty the file in the
// resource directory is used. A missing file is not an error and the defaults
// are used instead. Environment variables are applied after the file.
func Load(path string) (Netplay, error) {
	n := NewNetplay()

	if path == "" {
		var err error
		path, err = paths.ResourcePath(DefaultsFile)
		if err != nil {
			return n, curated.Errorf(LoadError, err)
		}
	}

	err := n.loadFile(path)
	if err != nil {
		return n, err
	}

	err = env.ParseWithOptions(&n, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return n, curated.Errorf(EnvError, err)
	}

	return n, n.Validate()
}

func (n *Netplay) loadFile(path string) error {
	d, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return curated.Errorf(LoadError, err)
	}

	err = yaml.Unmarshal(d, n)
	if err != nil {
		return curated.Errorf(LoadError, err)
	}

	return nil
}

// Save preferences to the named file.
func (n Netplay) Save(path string) error {
	d, err := yaml.Marshal(n)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	err = os.WriteFile(path, d, 0o600)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	return nil
}

// Validate returns an error if any of the preferences are out of range.
func (n Netplay) Validate() error {
	if n.Player != 1 && n.Player != 2 {
		return curated.Errorf(InvalidPref, "player", n.Player)
	}
	if n.Port < 1 || n.Port > 65534 {
		return curated.Errorf(InvalidPref, "port", n.Port)
	}
	if n.PredictionWindow < 0 {
		return curated.Errorf(InvalidPref, "prediction_window", n.PredictionWindow)
	}
	if n.PacketLoss < 0 || n.PacketLoss >= 1 {
		return curated.Errorf(InvalidPref, "packet_loss", n.PacketLoss)
	}
	if n.TickRate < 1 || n.TickRate > 1000 {
		return curated.Errorf(InvalidPref, "tick_rate", n.TickRate)
	}
	if !n.Loopback && strings.TrimSpace(n.Remote) == "" {
		return curated.Errorf(InvalidPref, "remote", "empty")
	}
	return nil
}

// the keys accepted by Set(). in the same order as the fields of Netplay
var netplayKeys = []string{
	"player", "remote", "loopback", "port", "prediction_window", "diagnostics",
	"dump_dir", "packet_loss", "tick_rate", "metrics_addr", "statsview",
}

// Set the preference named by key. The key is the name used in the YAML file.
// The preference is unchanged if the value cannot be parsed.
func (n *Netplay) Set(key string, value string) error {
	var err error

	// parse into a copy so that a failed parse leaves n untouched
	c := *n

	switch key {
	case "player":
		c.Player, err = strconv.Atoi(value)
	case "remote":
		c.Remote = value
	case "loopback":
		c.Loopback, err = strconv.ParseBool(value)
	case "port":
		c.Port, err = strconv.Atoi(value)
	case "prediction_window":
		c.PredictionWindow, err = strconv.Atoi(value)
	case "diagnostics":
		c.Diagnostics, err = strconv.ParseBool(value)
	case "dump_dir":
		c.DumpDir = value
	case "packet_loss":
		c.PacketLoss, err = strconv.ParseFloat(value, 64)
	case "tick_rate":
		c.TickRate, err = strconv.Atoi(value)
	case "metrics_addr":
		c.MetricsAddr = value
	case "statsview":
		c.Statsview, err = strconv.ParseBool(value)
	default:
		return curated.Errorf(UnknownPref, key)
	}

	if err != nil {
		return curated.Errorf(InvalidPref, key, err)
	}

	*n = c

	return nil
}
