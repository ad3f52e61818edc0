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

// OperandKind discriminates the tagged operand variants the assembler can
// produce for any instruction shape it doesn't specialize away.
type OperandKind byte

const (
	// OpImm is a literal word baked in at assembly time. Not settable.
	OpImm OperandKind = iota
	// OpReg addresses a register by index.
	OpReg
	// OpMem addresses a RAM cell; the address itself is computed by
	// evaluating Inner, so Mem(Reg), Mem(Imm) and the nested Mem(Mem(_))
	// form all share this one variant.
	OpMem
	// OpPort addresses the single I/O port. Val carries the port number
	// as written in source for disassembly purposes only: Get/Set both
	// ignore it and touch the Input/Output latch.
	OpPort
)

// Operand is a resolved, tagged operand: one of Imm, Reg, Mem(inner) or
// Port. It is the generic fallback representation used by instruction
// records that the assembler did not specialize into a dedicated
// register/immediate shape.
type Operand struct {
	Kind  OperandKind
	Val   int32    // immediate value (OpImm), register index (OpReg), port number (OpPort)
	Inner *Operand // address expression for OpMem
}

// Imm builds an immediate operand.
func Imm(v int32) Operand { return Operand{Kind: OpImm, Val: v} }

// Reg builds a register operand.
func Reg(idx int) Operand { return Operand{Kind: OpReg, Val: int32(idx)} }

// Mem builds a memory operand addressed by inner.
func Mem(inner Operand) Operand { return Operand{Kind: OpMem, Inner: &inner} }

// Port builds a port operand. The port number is cosmetic: the machine
// only ever has one input and one output latch.
func Port(n int32) Operand { return Operand{Kind: OpPort, Val: n} }

// Get reads the operand's current value against state s.
func (o Operand) Get(s *State) (Word, error) {
	switch o.Kind {
	case OpImm:
		return Word(o.Val), nil
	case OpReg:
		if int(o.Val) < 0 || int(o.Val) >= NumRegisters {
			return 0, errors.Errorf("register index %d out of range", o.Val)
		}
		return s.Reg[o.Val], nil
	case OpPort:
		return s.Input, nil
	case OpMem:
		addr, err := o.Inner.Get(s)
		if err != nil {
			return 0, err
		}
		if addr < 0 || int(addr) >= RAMSize {
			return 0, &RuntimeError{PC: s.PC, Msg: errors.Errorf("memory read out of range: %d", addr).Error()}
		}
		return s.RAM[addr], nil
	default:
		return 0, errors.Errorf("unknown operand kind %d", o.Kind)
	}
}

// Set writes v through the operand against state s. Only Reg, Mem and
// Port are settable; writing an in-range Mem address succeeds, and only
// an out-of-range address is an error (unlike a naive implementation that
// rejects every Set unconditionally, which would make every "mv [addr],
// s" instruction in a program fail).
func (o Operand) Set(s *State, v Word) error {
	switch o.Kind {
	case OpReg:
		if int(o.Val) < 0 || int(o.Val) >= NumRegisters {
			return errors.Errorf("register index %d out of range", o.Val)
		}
		s.Reg[o.Val] = v
		return nil
	case OpPort:
		s.Output = v
		return nil
	case OpMem:
		addr, err := o.Inner.Get(s)
		if err != nil {
			return err
		}
		if addr < 0 || int(addr) >= RAMSize {
			return &RuntimeError{PC: s.PC, Msg: errors.Errorf("memory write out of range: %d", addr).Error()}
		}
		s.RAM[addr] = v
		return nil
	default:
		return errors.Errorf("operand kind %d is not settable", o.Kind)
	}
}
