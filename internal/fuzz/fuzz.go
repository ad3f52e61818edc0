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

// Package fuzz generates random valid instruction streams and fans
// execution of many of them out over goroutines with
// golang.org/x/sync/errgroup, asserting the core machine invariants
// (pc always a valid ROM index before dispatch, sp never drifting
// outside [-1, RAMSize)) hold regardless of what the random stream
// does. It is exercised only from a test gated behind -short; nothing
// in this package is a production code path.
package fuzz

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"corevm/vm"
)

// Violation reports an invariant broken during a random run.
type Violation struct {
	Run int
	Msg string
}

func (v *Violation) Error() string { return v.Msg }

// randomInstr builds one syntactically valid, in-bounds instruction.
// Register indices are drawn from the named bank (0..7), and no
// instruction ever writes sp directly, so sp only moves through push
// and pop and the only faults a run can hit are genuine stack
// over/underflows, not stray sp values that would swamp every other
// invariant check. No memory operands are generated.
func randomInstr(r *rand.Rand, romLen int) vm.Instr {
	reg := func() int { return r.Intn(8) }
	dst := func() int {
		d := r.Intn(7)
		if d >= int(vm.RegSP) {
			d++
		}
		return d
	}
	target := func() int { return r.Intn(romLen) }

	switch r.Intn(8) {
	case 0:
		return vm.Instr{Op: vm.OpMvRegImm, Dst: dst(), Imm: int32(r.Intn(2001) - 1000)}
	case 1:
		alus := []vm.ALUOp{vm.ALUAdd, vm.ALUSub, vm.ALUShl, vm.ALUShr, vm.ALUAnd, vm.ALUXor, vm.ALUOr}
		return vm.Instr{Op: vm.OpALURegRegImm, ALU: alus[r.Intn(len(alus))], Dst: dst(), RegA: reg(), Imm: int32(r.Intn(33))}
	case 2:
		conds := []vm.Cond{vm.CondEq, vm.CondNe, vm.CondLt, vm.CondGe}
		return vm.Instr{Op: vm.OpBranchRegReg, Cond: conds[r.Intn(len(conds))], RegA: reg(), RegB: reg(), Target: target()}
	case 3:
		return vm.Instr{Op: vm.OpJmp, Target: target()}
	case 4:
		return vm.Instr{Op: vm.OpPush, Args: []vm.Operand{vm.Reg(reg())}}
	case 5:
		return vm.Instr{Op: vm.OpPop, Args: []vm.Operand{vm.Reg(dst())}}
	case 6:
		return vm.Instr{Op: vm.OpSync}
	default:
		return vm.Instr{Op: vm.OpNop}
	}
}

// randomROM builds a ROM of n random instructions.
func randomROM(r *rand.Rand, n int) (*vm.ROM, error) {
	code := make([]vm.Instr, n)
	for i := range code {
		code[i] = randomInstr(r, n)
	}
	return vm.NewROM(code)
}

// checkInvariants runs rom for up to maxSteps instructions, failing
// the moment pc or sp leaves the range the interpreter guarantees to
// keep them in.
func checkInvariants(run int, rom *vm.ROM, maxSteps int) error {
	s := vm.NewState()
	s.Install(rom)
	for i := 0; i < maxSteps && !s.Finished; i++ {
		if s.PC < 0 || s.PC >= rom.Len() {
			return &Violation{run, "pc left valid ROM range"}
		}
		if sp := s.Reg[vm.RegSP]; sp < -1 || int(sp) >= vm.RAMSize {
			return &Violation{run, "sp left [-1, RAMSize) range"}
		}
		if err := s.StepErr(); err != nil {
			// A fault (e.g. stack over/underflow) is an expected,
			// well-formed exit: the invariant is that the machine
			// never silently wanders out of range, not that random
			// streams never fault.
			return nil
		}
	}
	return nil
}

// RunRandom spawns runs goroutines, each exercising a freshly
// generated random program of length instrCount for up to maxSteps
// instructions, and reports the first invariant violation found, if
// any.
func RunRandom(seed int64, runs, instrCount, maxSteps int) error {
	eg := new(errgroup.Group)
	for i := 0; i < runs; i++ {
		i := i
		eg.Go(func() error {
			r := rand.New(rand.NewSource(seed + int64(i)))
			rom, err := randomROM(r, instrCount)
			if err != nil {
				return err
			}
			return checkInvariants(i, rom, maxSteps)
		})
	}
	return eg.Wait()
}
