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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and allows different flags for each mode.
//
// The arguments are given with NewArgs() and then parsed with Parse(). The
// first argument after the flags is checked against the sub-modes added with
// AddSubModes(). The first sub-mode is the default:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "COMPARE", "VERSION")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		player := md.AddInt("player", 1, "player slot")
//		switch p, err := md.Parse(); p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		play(*player, md.RemainingArgs())
//	}
//
// Sub-mode comparisons are case insensitive. Help is printed automatically
// when the -help flag is seen, in which case Parse() returns ParseHelp.
//
// IsSet() reports whether a flag was given on the command line, which is
// useful when a flag overrides a value that came from somewhere else.
package modalflag
