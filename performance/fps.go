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

package performance

// CalcFPS takes the the number of ticks and duration (in seconds) and returns
// the ticks-per-second and the accuracy of that value, as a percentage of the
// intended tick rate.
func CalcFPS(tickRate int, numTicks int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 || tickRate <= 0 {
		return 0, 0
	}
	fps = float64(numTicks) / duration
	accuracy = 100 * float64(numTicks) / (duration * float64(tickRate))
	return fps, accuracy
}
