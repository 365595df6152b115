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

package snapshot

// Sanitize normalises the fields of the frame that are not part of the
// deterministic state. It must only be used on a copy of the frame that will
// never be restored: clearing live addresses in a frame that is later restored
// would leave the simulation with references to nothing.
//
// Sanitize is idempotent.
func Sanitize(f *Frame) {
	for i := range f.Players {
		sanitizePlayer(&f.Players[i])
	}

	f.Scene.ViewScale = 0

	for i := range f.Scheduler.Tasks {
		f.Scheduler.Tasks[i].Handler = 0
	}

	for i := range f.Effects {
		sanitizeEffect(&f.Effects[i])
	}
}

func sanitizePlayer(p *Player) {
	p.CharTable = 0
	p.Target = 0
	p.ScreenX = 0
	p.ScreenY = 0
	p.Palette = p.Palette.Deterministic()
}

func sanitizeEffect(e *Effect) {
	// the links of an inactive slot are maintained by the scheduler. everything
	// else in the slot is left over from whatever used the slot before (or was
	// never initialised at all)
	if !e.Active {
		before, myself, behind := e.Before, e.Myself, e.Behind
		*e = Effect{}
		e.Before = before
		e.Myself = myself
		e.Behind = behind
		return
	}

	e.Master = 0
	e.Sprite = 0
	e.Palette = e.Palette.Deterministic()
	e.Payload.Len = int16(e.Payload.length())
	e.Payload.zeroTail()
}

// SanitizeBytes decodes the encoded frame, sanitizes it and encodes it back
// into the same buffer. The buffer must not be one that will be restored.
func SanitizeBytes(b []byte) error {
	var f Frame
	if err := f.Decode(b); err != nil {
		return err
	}
	Sanitize(&f)
	return f.Encode(b)
}
