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

// Package cartridgeloader is used to prepare ROM files for loading into
// the memory array. It handles filename validation and the location of
// the save file that travels with a ROM.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/picopak/curated"
)

// Sentinal error messages for the cartridgeloader package.
const (
	UnrecognisedFile = "cartridgeloader: unrecognised file (%s)"
)

// FileExtensions is the list of file extensions the loader accepts. The
// byte order of the image is expected to be big-endian in every case.
var FileExtensions = [...]string{".z64", ".n64", ".bin"}

// Loader abstracts the process of loading a ROM file from storage.
type Loader struct {
	Filename string

	// the name the cartridge is known by. the base of the filename
	// without its extension
	Title string

	// where the EEPROM save for this cartridge lives. a sibling of the
	// ROM file
	EEPROMPath string

	// Data and Hash are empty until Load() has been called
	Data []byte
	Hash string
}

// NewLoader is the preferred method of initialisation for the Loader
// type. The filename is validated but not opened.
func NewLoader(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	ok := false
	for _, e := range FileExtensions {
		if ext == e {
			ok = true
			break
		}
	}
	if !ok {
		return Loader{}, curated.Errorf(UnrecognisedFile, filename)
	}

	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	return Loader{
		Filename:   filename,
		Title:      title,
		EEPROMPath: filepath.Join(filepath.Dir(filename), fmt.Sprintf("%s.eep", title)),
	}, nil
}

// Load the ROM data and prepare the hash. Safe to call twice.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	data, err := os.ReadFile(ld.Filename)
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}

	ld.Data = data
	ld.Hash = fmt.Sprintf("%x", sha1.Sum(ld.Data))

	return nil
}
