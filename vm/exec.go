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

// Steps runs up to n instructions, stopping early if the machine becomes
// Finished or right after a sync instruction has executed (sync counts as
// one step; the I/O handler, if any, runs during it, and control then
// returns to the host). It reports whether the machine can still make
// progress (false once Finished). A runtime fault sets Finished and stops
// the loop, and the error itself is discarded; callers that care about
// the error should call StepErr in a loop instead.
func (s *State) Steps(n int) bool {
	for i := 0; i < n; i++ {
		syncing := s.rom != nil && s.PC >= 0 && s.PC < len(s.rom.Code) && s.rom.Code[s.PC].Op == OpSync
		if !s.Step() {
			return false
		}
		if syncing {
			break
		}
	}
	return !s.Finished
}

// Step executes a single instruction and reports whether the machine can
// still make progress afterward. Stepping a Finished machine is a no-op
// that returns false. Step swallows runtime faults and stops the machine;
// callers that need the fault itself should call StepErr directly.
func (s *State) Step() bool {
	if err := s.StepErr(); err != nil {
		s.Finished = true
		return false
	}
	return !s.Finished
}

// StepErr executes a single instruction, returning a *RuntimeError if one
// occurred. It is the primitive Step and Steps are built on; embedders
// that want fault details should call it directly instead of Step.
func (s *State) StepErr() error {
	if s.Finished {
		return nil
	}
	if s.rom == nil || s.PC < 0 || s.PC >= len(s.rom.Code) {
		return &RuntimeError{PC: s.PC, Msg: "program counter out of range"}
	}
	instr := &s.rom.Code[s.PC]
	if err := s.exec(instr); err != nil {
		return err
	}
	s.PC++
	return nil
}

func (s *State) exec(in *Instr) error {
	switch in.Op {
	case OpNop:
		// nothing
	case OpTerm:
		s.Finished = true

	case OpMv:
		v, err := in.OperB.Get(s)
		if err != nil {
			return err
		}
		return in.OperA.Set(s, v)
	case OpMvRegImm:
		s.Reg[in.Dst] = Word(in.Imm)

	case OpALU:
		a, err := in.OperB.Get(s)
		if err != nil {
			return err
		}
		b, err := in.OperC.Get(s)
		if err != nil {
			return err
		}
		v, err := applyALU(in.ALU, a, b)
		if err != nil {
			return err
		}
		return in.OperA.Set(s, v)
	case OpALURegRegImm:
		v, err := applyALU(in.ALU, s.Reg[in.RegA], Word(in.Imm))
		if err != nil {
			return err
		}
		s.Reg[in.Dst] = v

	case OpBranch:
		a, err := in.OperA.Get(s)
		if err != nil {
			return err
		}
		b, err := in.OperB.Get(s)
		if err != nil {
			return err
		}
		if evalCond(in.Cond, a, b) {
			s.PC = in.Target
		}
	case OpBranchRegReg:
		if evalCond(in.Cond, s.Reg[in.RegA], s.Reg[in.RegB]) {
			s.PC = in.Target
		}
	case OpBranchRegImm:
		if evalCond(in.Cond, s.Reg[in.RegA], Word(in.Imm)) {
			s.PC = in.Target
		}

	case OpJmp:
		s.PC = in.Target
	case OpJmpReg:
		// Unlike a static jmp/branch target (already stored as
		// label_index-1 by the assembler), a register holds the raw
		// absolute index apc computed, so the -1 compensation for the
		// dispatch loop's pc++ happens here instead.
		s.PC = int(s.Reg[in.RegA]) - 1

	case OpApc:
		s.Reg[in.Dst] = Word(s.PC) + Word(in.Imm)

	case OpIn:
		cur, err := in.OperA.Get(s)
		if err != nil {
			return err
		}
		return in.OperA.Set(s, cur|(s.Input<<in.Shift))
	case OpOut:
		v, err := in.OperA.Get(s)
		if err != nil {
			return err
		}
		s.Output = v >> in.Shift

	case OpSync:
		s.Sync = true
		if s.onSync != nil {
			s.onSync(s)
		}
		s.Sync = false

	case OpPush:
		// ram[sp] = s; sp -= 1 -- store at the current sp, then descend.
		for _, o := range in.Args {
			v, err := o.Get(s)
			if err != nil {
				return err
			}
			sp := s.Reg[RegSP]
			if sp < 0 {
				return &RuntimeError{PC: s.PC, Msg: "stack overflow"}
			}
			s.RAM[sp] = v
			s.Reg[RegSP] = sp - 1
		}
	case OpPop:
		// sp += 1; d = ram[sp] -- ascend, then load. Args already arrive
		// in reverse of the matching push's write order.
		for _, o := range in.Args {
			sp := s.Reg[RegSP] + 1
			if int(sp) >= RAMSize {
				return &RuntimeError{PC: s.PC, Msg: "stack underflow"}
			}
			s.Reg[RegSP] = sp
			if err := o.Set(s, s.RAM[sp]); err != nil {
				return err
			}
		}

	default:
		return &RuntimeError{PC: s.PC, Msg: errors.Errorf("unknown opcode %d", in.Op).Error()}
	}
	return nil
}

func applyALU(op ALUOp, a, b Word) (Word, error) {
	switch op {
	case ALUAdd:
		return a + b, nil
	case ALUSub:
		return a - b, nil
	case ALUShl:
		return a << uint(b), nil
	case ALUShr:
		return a >> uint(b), nil
	case ALUShrLogical:
		return Word(uint32(a) >> uint(b)), nil
	case ALUAnd:
		return a & b, nil
	case ALUXor:
		return a ^ b, nil
	case ALUOr:
		return a | b, nil
	case ALUEq:
		return boolWord(a == b), nil
	case ALUNe:
		return boolWord(a != b), nil
	case ALULt:
		return boolWord(a < b), nil
	case ALUGe:
		return boolWord(a >= b), nil
	default:
		return 0, errors.Errorf("unknown ALU op %d", op)
	}
}

func evalCond(c Cond, a, b Word) bool {
	switch c {
	case CondEq:
		return a == b
	case CondNe:
		return a != b
	case CondLt:
		return a < b
	case CondGe:
		return a >= b
	default:
		return false
	}
}

func boolWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}
