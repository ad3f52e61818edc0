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

package vm

// State holds all mutable state of one running program: the register
// file, RAM, program counter, I/O latches and run flags, plus the
// installed ROM. The zero value is not ready to use; call NewState.
type State struct {
	Reg [NumRegisters]Word
	RAM [RAMSize]Word
	PC  int

	Input  Word
	Output Word

	Finished bool
	Sync     bool

	rom *ROM

	// onSync is invoked whenever the dispatch loop executes a sync
	// instruction, after Output has been updated and before Input is
	// consulted for the next read. It may inspect/replace Input and
	// Output. A nil handler leaves the latches untouched, so sync
	// degenerates into a no-op step boundary.
	onSync func(s *State)
}

// NewState returns a freshly reset State with no ROM installed. Stepping
// an empty State immediately reports Finished.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Install replaces the ROM and resets all other state, as if the machine
// had been power-cycled with a new program burned in.
func (s *State) Install(rom *ROM) {
	s.rom = rom
	s.Reset()
}

// Reset zeroes the register file and RAM, sets sp to the top of RAM,
// rewinds pc to 0, and clears the I/O latches and run flags. It does not
// touch the installed ROM.
func (s *State) Reset() {
	for i := range s.Reg {
		s.Reg[i] = 0
	}
	for i := range s.RAM {
		s.RAM[i] = 0
	}
	s.Reg[RegSP] = RAMSize - 1
	s.PC = 0
	s.Input = 0
	s.Output = 0
	s.Finished = false
	s.Sync = false
}

// SetIOHandler installs the callback invoked on every sync instruction.
// Passing nil removes any previously installed handler.
func (s *State) SetIOHandler(h func(s *State)) {
	s.onSync = h
}

// ROM returns the currently installed program image, or nil.
func (s *State) ROM() *ROM {
	return s.rom
}

// Registers returns a snapshot of the register file.
func (s *State) Registers() [NumRegisters]Word {
	return s.Reg
}

// Memory returns a snapshot of RAM.
func (s *State) Memory() [RAMSize]Word {
	return s.RAM
}
