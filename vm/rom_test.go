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

package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corevm/vm"
)

func TestNewROMPadsTerminatorAndNops(t *testing.T) {
	rom, err := vm.NewROM([]vm.Instr{{Op: vm.OpMvRegImm, Dst: int(vm.RegS0), Imm: 1}})
	assert.NoError(t, err)
	assert.Equal(t, 1+1+vm.NopPadding, rom.Len())
	assert.Equal(t, vm.OpTerm, rom.Code[1].Op)
	for i := 2; i < rom.Len(); i++ {
		assert.Equal(t, vm.OpNop, rom.Code[i].Op)
	}
}

func TestNewROMRejectsOversizedProgram(t *testing.T) {
	code := make([]vm.Instr, vm.MaxUserInstructions+1)
	_, err := vm.NewROM(code)
	assert.Error(t, err)
}

// Out-of-range pc tolerance: a jump landing past the last user
// instruction and the terminator should hit a no-op, not fault, since the
// pad exists exactly for that case.
func TestOutOfRangeLandingHitsPadding(t *testing.T) {
	// One real instruction (index 0), terminator at 1, then 20 no-ops.
	// Jumping to index 10 (well within the padding) must land safely.
	rom, err := vm.NewROM([]vm.Instr{
		{Op: vm.OpJmp, Target: 9}, // stored target 9 -> lands at index 10
	})
	assert.NoError(t, err)
	s := vm.NewState()
	s.Install(rom)
	assert.NoError(t, s.StepErr())
	assert.Equal(t, 10, s.PC)
	assert.Equal(t, vm.OpNop, rom.Code[10].Op)
}
