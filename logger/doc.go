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

// Package logger is the central log for the application. There is only one log
// and it is reached through the package level functions.
//
// Every entry is a tag and a detail string. Adjacent entries with the same tag
// and detail are collapsed into a single entry with a repeat count. This
// is important for code that runs every tick: a stuck condition logs one
// line and not sixty lines a second.
//
// Every request to log must be accompanied by a Permission. The Allow value can
// be used when the entry should always be made. Types that implement the
// Permission interface can refuse logging depending on their own state. For
// example, the netplay controller refuses logging while it is re-simulating
// frames during a rollback.
package logger
