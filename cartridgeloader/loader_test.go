// This file is part of Picopak.
//
// Picopak is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Picopak is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Picopak.  If not, see <https://www.gnu.org/licenses/>.

package cartridgeloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/picopak/cartridgeloader"
	"github.com/jetsetilly/picopak/test"
)

func TestNewLoader(t *testing.T) {
	ld, err := cartridgeloader.NewLoader(filepath.Join("roms", "game.z64"))
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.Title, "game")
	test.Equate(t, ld.EEPROMPath, filepath.Join("roms", "game.eep"))

	// extension check is case insensitive
	_, err = cartridgeloader.NewLoader("GAME.Z64")
	test.ExpectedSuccess(t, err)

	_, err = cartridgeloader.NewLoader("game.tar")
	test.ExpectedFailure(t, err)
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "game.z64")
	err := os.WriteFile(fn, []byte{0x80, 0x37, 0x12, 0x40}, 0600)
	test.ExpectedSuccess(t, err)

	ld, err := cartridgeloader.NewLoader(fn)
	test.ExpectedSuccess(t, err)
	err = ld.Load()
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(ld.Data), 4)
	test.ExpectedSuccess(t, ld.Hash != "")

	// missing file
	ld, err = cartridgeloader.NewLoader(filepath.Join(t.TempDir(), "missing.z64"))
	test.ExpectedSuccess(t, err)
	err = ld.Load()
	test.ExpectedFailure(t, err)
}
