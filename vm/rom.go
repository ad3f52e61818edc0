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

import "github.com/pkg/errors"

// ROM is an assembled, immutable program image. It is produced by package
// asm and installed into a State with Install; the interpreter never
// mutates it.
type ROM struct {
	Code []Instr
	// Source holds, for each instruction (including the terminator and
	// padding cells, which carry ""), the trimmed assembly source line
	// it was produced from. Populated by package asm; exists purely for
	// disassembly/debugging and is never consulted by the dispatch
	// loop.
	Source []string
}

// NewROM builds a ROM from assembled code, appending the terminator and
// no-op padding cells the dispatch loop relies on to tolerate small
// out-of-range pc values without special-casing bounds on every step.
func NewROM(code []Instr) (*ROM, error) {
	if len(code) > MaxUserInstructions {
		return nil, errors.Errorf("program too large: %d instructions exceeds limit of %d", len(code), MaxUserInstructions)
	}
	padded := make([]Instr, 0, len(code)+1+NopPadding)
	padded = append(padded, code...)
	padded = append(padded, Instr{Op: OpTerm})
	for i := 0; i < NopPadding; i++ {
		padded = append(padded, Instr{Op: OpNop})
	}
	return &ROM{Code: padded}, nil
}

// Len reports the number of instructions, including the terminator and
// padding.
func (r *ROM) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Code)
}
