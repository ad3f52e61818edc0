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

// Package corevm wires the front-end compiler, assembler and
// interpreter together into one embeddable Machine.
package corevm

import (
	"strings"

	"corevm/asm"
	"corevm/lang"
	"corevm/vm"
)

// Machine is the embedding surface: compile or assemble a program into
// it, then step it forward, exchanging words with the host through its
// I/O latches. A Machine is not safe for concurrent use; Steps must
// not be re-entered from its own I/O callback.
type Machine struct {
	state *vm.State
}

// New returns a Machine with no program installed. Steps on it will
// report no progress until Program or Assemble is called.
func New() *Machine {
	return &Machine{state: vm.NewState()}
}

// Program compiles src with the front-end language, assembles the
// result, and installs it as the Machine's ROM, replacing any program
// installed previously.
func (m *Machine) Program(src string) error {
	asmText, err := lang.Compile(src)
	if err != nil {
		return err
	}
	return m.Assemble(asmText)
}

// Assemble assembles asmText directly and installs it as the
// Machine's ROM, bypassing the front-end compiler.
func (m *Machine) Assemble(asmText string) error {
	rom, err := asm.Assemble("program", strings.NewReader(asmText))
	if err != nil {
		return err
	}
	m.state.Install(rom)
	return nil
}

// Reset zeros every register and RAM cell, sets sp to the top of RAM,
// clears the I/O latches and flags, and rewinds pc to 0. The ROM
// itself is untouched.
func (m *Machine) Reset() { m.state.Reset() }

// Steps runs up to n instructions and reports whether the machine can
// still make progress.
func (m *Machine) Steps(n int) bool { return m.state.Steps(n) }

// Step runs a single instruction and reports whether the machine can
// still make progress.
func (m *Machine) Step() bool { return m.state.Step() }

// StepErr runs a single instruction, surfacing any runtime fault.
func (m *Machine) StepErr() error { return m.state.StepErr() }

// SetIOHandler installs the callback invoked whenever the guest
// executes sync, with a mutable reference to the Machine so the
// callback can read Output and set Input before the Machine resumes.
func (m *Machine) SetIOHandler(fn func(*Machine)) {
	if fn == nil {
		m.state.SetIOHandler(nil)
		return
	}
	m.state.SetIOHandler(func(*vm.State) { fn(m) })
}

// Registers returns a snapshot of the register bank.
func (m *Machine) Registers() [vm.NumRegisters]vm.Word { return m.state.Registers() }

// Memory returns a snapshot of RAM.
func (m *Machine) Memory() [vm.RAMSize]vm.Word { return m.state.Memory() }

// Input returns the current input latch.
func (m *Machine) Input() vm.Word { return m.state.Input }

// SetInput sets the input latch, typically from within an I/O
// callback.
func (m *Machine) SetInput(v vm.Word) { m.state.Input = v }

// Output returns the current output latch.
func (m *Machine) Output() vm.Word { return m.state.Output }

// Finished reports whether the guest program has executed a
// terminating instruction.
func (m *Machine) Finished() bool { return m.state.Finished }

// PC returns the current program counter.
func (m *Machine) PC() int { return m.state.PC }

// State exposes the underlying interpreter state for collaborators,
// such as image serialization, that need direct access.
func (m *Machine) State() *vm.State { return m.state }
