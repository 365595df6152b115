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

// Package userinput handles input from the keyboard of the person playing.
//
// It can be thought of as a translation layer between the terminal and the
// button state read by the netplay package. The Keyboard type puts the
// terminal into cbreak mode and turns key presses into events. The Controllers
// type consumes those events and satisfies the netplay.InputSource interface.
//
// Terminals do not report key releases so a key press holds the button down
// for a short number of ticks. Key repeat keeps the button held for as long as
// the key is down.
package userinput
