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

package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/prefs"
	"github.com/jetsetilly/rollnet/test"
)

func TestDefaults(t *testing.T) {
	n := prefs.NewNetplay()
	test.ExpectSuccess(t, n.Validate())
	test.ExpectEquality(t, n.Player, 1)
	test.ExpectEquality(t, n.Port, 50000)
	test.ExpectEquality(t, n.TickRate, 60)

	// missing file means defaults
	l, err := prefs.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l, n)
}

func TestLoadSave(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "netplay.yaml")

	n := prefs.NewNetplay()
	n.Player = 2
	n.Remote = "192.168.0.10:6000"
	n.Diagnostics = true
	n.PacketLoss = 0.25
	test.DemandSuccess(t, n.Save(pth))

	l, err := prefs.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l, n)

	// fields missing from the file keep their default value
	test.DemandSuccess(t, os.WriteFile(pth, []byte("player: 2\n"), 0o600))
	l, err = prefs.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Player, 2)
	test.ExpectEquality(t, l.Port, 50000)

	// bad yaml
	test.DemandSuccess(t, os.WriteFile(pth, []byte("player: [\n"), 0o600))
	_, err = prefs.Load(pth)
	test.ExpectSuccess(t, curated.Is(err, prefs.LoadError))

	// valid yaml but invalid value
	test.DemandSuccess(t, os.WriteFile(pth, []byte("tick_rate: 0\n"), 0o600))
	_, err = prefs.Load(pth)
	test.ExpectSuccess(t, curated.Is(err, prefs.InvalidPref))
}

func TestEnvironment(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "netplay.yaml")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("port: 6000\nloopback: false\n"), 0o600))

	t.Setenv("ROLLNET_PORT", "7000")
	t.Setenv("ROLLNET_LOOPBACK", "true")
	t.Setenv("ROLLNET_PACKET_LOSS", "0.5")

	l, err := prefs.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.Port, 7000)
	test.ExpectSuccess(t, l.Loopback)
	test.ExpectEquality(t, l.PacketLoss, 0.5)

	t.Setenv("ROLLNET_PORT", "seven")
	_, err = prefs.Load(pth)
	test.ExpectSuccess(t, curated.Is(err, prefs.EnvError))
}

func TestSet(t *testing.T) {
	n := prefs.NewNetplay()
	test.ExpectSuccess(t, n.Set("remote", "example.com"))
	test.ExpectEquality(t, n.Remote, "example.com")
	test.ExpectSuccess(t, n.Set("statsview", "true"))
	test.ExpectSuccess(t, n.Statsview)

	err := n.Set("volume", "11")
	test.ExpectSuccess(t, curated.Is(err, prefs.UnknownPref))
	err = n.Set("port", "")
	test.ExpectSuccess(t, curated.Is(err, prefs.InvalidPref))

	// a value that fails to parse leaves the preference unchanged
	test.ExpectSuccess(t, n.Set("port", "6000"))
	test.ExpectFailure(t, n.Set("port", "oops"))
	test.ExpectEquality(t, n.Port, 6000)
	test.ExpectFailure(t, n.Set("packet_loss", "lots"))
	test.ExpectEquality(t, n.PacketLoss, 0.0)
	test.ExpectSuccess(t, n.Validate())

	// remote can only be empty in loopback mode
	n.Remote = ""
	test.ExpectFailure(t, n.Validate())
	n.Loopback = true
	test.ExpectSuccess(t, n.Validate())
}
