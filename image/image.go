// This file is part of corevm.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package image persists and restores a vm.State snapshot (registers,
// RAM, pc, flags and the installed ROM) to a file, independent of the
// interpreter core itself. Save/restore round-tripping is intentionally
// external: the core does not prescribe a byte layout.
package image

import (
	"bufio"
	"encoding/binary"
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"corevm/vm"
)

// magic identifies a corevm snapshot file; version allows the layout
// to evolve without silently misreading an older file.
const (
	magic   uint32 = 0x636f7265 // "core"
	version uint32 = 1
)

// snapshot is the gob-encoded payload following the fixed-width
// header. ROM is encoded separately from the register/RAM banks so
// those stay in the same little-endian word layout the rest of this
// package's encoding uses, while the richer, variably-shaped Instr records
// ride in the gob section.
type snapshot struct {
	PC       int
	Input    vm.Word
	Output   vm.Word
	Finished bool
	ROM      []vm.Instr
}

// Save writes state's full snapshot to fileName.
func Save(fileName string, s *vm.State) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "image: create")
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return errors.Wrap(err, "image: write magic")
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return errors.Wrap(err, "image: write version")
	}
	regs := s.Registers()
	if err := binary.Write(w, binary.LittleEndian, regs[:]); err != nil {
		return errors.Wrap(err, "image: write registers")
	}
	ram := s.Memory()
	if err := binary.Write(w, binary.LittleEndian, ram[:]); err != nil {
		return errors.Wrap(err, "image: write RAM")
	}

	rom := s.ROM()
	var code []vm.Instr
	if rom != nil {
		code = rom.Code
	}
	snap := snapshot{
		PC:       s.PC,
		Input:    s.Input,
		Output:   s.Output,
		Finished: s.Finished,
		ROM:      code,
	}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return errors.Wrap(err, "image: encode snapshot")
	}
	return w.Flush()
}

// Load restores a snapshot written by Save into a fresh vm.State.
func Load(fileName string) (*vm.State, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "image: open")
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var gotMagic, gotVersion uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return nil, errors.Wrap(err, "image: read magic")
	}
	if gotMagic != magic {
		return nil, errors.New("image: not a corevm snapshot")
	}
	if err := binary.Read(r, binary.LittleEndian, &gotVersion); err != nil {
		return nil, errors.Wrap(err, "image: read version")
	}
	if gotVersion != version {
		return nil, errors.Errorf("image: unsupported snapshot version %d", gotVersion)
	}

	var regs [vm.NumRegisters]vm.Word
	if err := binary.Read(r, binary.LittleEndian, regs[:]); err != nil {
		return nil, errors.Wrap(err, "image: read registers")
	}
	var ram [vm.RAMSize]vm.Word
	if err := binary.Read(r, binary.LittleEndian, ram[:]); err != nil {
		return nil, errors.Wrap(err, "image: read RAM")
	}

	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "image: decode snapshot")
	}

	s := vm.NewState()
	if len(snap.ROM) > 0 {
		rom, err := vm.NewROM(snap.ROM[:len(snap.ROM)-1-vm.NopPadding])
		if err != nil {
			return nil, errors.Wrap(err, "image: rebuild ROM")
		}
		s.Install(rom)
	}
	s.Reg = regs
	s.RAM = ram
	s.PC = snap.PC
	s.Input = snap.Input
	s.Output = snap.Output
	s.Finished = snap.Finished
	return s, nil
}
