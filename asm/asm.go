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

package asm

import (
	"fmt"
	"io"

	"corevm/vm"
)

// Assemble compiles the assembly read from r into a vm.ROM. name is used
// only in diagnostics (if r is a file, name should be the file name).
//
// When the source itself is at fault, err can be type-asserted to ErrAsm
// for up to 10 positioned diagnostics; a program longer than
// vm.MaxUserInstructions is reported by a plain error.
func Assemble(name string, r io.Reader) (*vm.ROM, error) {
	p := newParser()
	return p.Parse(name, r)
}

// mnemonic returns the textual mnemonic for the given instruction's Op,
// used by Disassemble. The ALU/Cond families are expanded to their
// canonical (non-rewritten) spelling; c> / c<= / b> / b<= are never
// reconstructed since the assembler discards that distinction once it
// rewrites operand order.
func mnemonic(in *vm.Instr) string {
	switch in.Op {
	case vm.OpNop:
		return "nop"
	case vm.OpTerm:
		return "halt"
	case vm.OpSync:
		return "sync"
	case vm.OpMv, vm.OpMvRegImm:
		return "mv"
	case vm.OpJmp:
		return "jmp"
	case vm.OpJmpReg:
		return "j"
	case vm.OpApc:
		return "apc"
	case vm.OpIn:
		return "in"
	case vm.OpOut:
		return "out"
	case vm.OpPush:
		return "push"
	case vm.OpPop:
		return "pop"
	case vm.OpALU, vm.OpALURegRegImm:
		return aluMnemonic(in.ALU)
	case vm.OpBranch, vm.OpBranchRegReg, vm.OpBranchRegImm:
		return condMnemonic(in.Cond)
	default:
		return "???"
	}
}

func aluMnemonic(op vm.ALUOp) string {
	for m, a := range aluMnemonics {
		if a != op {
			continue
		}
		if m == "c>" || m == "c<=" {
			continue // alias of c< / c>=, not a canonical spelling
		}
		return m
	}
	return "c?"
}

func condMnemonic(c vm.Cond) string {
	for m, cc := range condMnemonics {
		if cc == c {
			switch m {
			case "b>", "b<=":
				continue
			}
			return m
		}
	}
	return "b?"
}

// Disassemble writes a human-readable mnemonic line for the instruction
// at index idx in rom to w. It is intended for debugging and test
// failure output, not for round-tripping through Assemble. If rom.Source
// was populated by Assemble, the original assembly line is appended as a
// trailing comment.
func Disassemble(rom *vm.ROM, idx int, w io.Writer) {
	if rom == nil || idx < 0 || idx >= len(rom.Code) {
		fmt.Fprintf(w, "???")
		return
	}
	in := &rom.Code[idx]
	fmt.Fprintf(w, "%04d: %s", idx, mnemonic(in))
	switch in.Op {
	case vm.OpMvRegImm:
		fmt.Fprintf(w, " %s, %d", vm.RegisterName(in.Dst), in.Imm)
	case vm.OpALURegRegImm:
		fmt.Fprintf(w, " %s, %s, %d", vm.RegisterName(in.Dst), vm.RegisterName(in.RegA), in.Imm)
	case vm.OpBranchRegReg:
		fmt.Fprintf(w, " %s, %s, ->%d", vm.RegisterName(in.RegA), vm.RegisterName(in.RegB), in.Target+1)
	case vm.OpBranchRegImm:
		fmt.Fprintf(w, " %s, %d, ->%d", vm.RegisterName(in.RegA), in.Imm, in.Target+1)
	case vm.OpJmp:
		fmt.Fprintf(w, " ->%d", in.Target+1)
	case vm.OpJmpReg, vm.OpIn, vm.OpOut:
		// operand text omitted: generic operands don't carry mnemonic-level detail worth reconstructing
	}
	if idx < len(rom.Source) && rom.Source[idx] != "" {
		fmt.Fprintf(w, "  ; %s", rom.Source[idx])
	}
}
