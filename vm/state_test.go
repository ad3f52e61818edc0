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

func TestResetInitialRegisters(t *testing.T) {
	s := vm.NewState()
	regs := s.Registers()
	for i, r := range regs {
		if i == int(vm.RegSP) {
			assert.Equal(t, vm.Word(vm.RAMSize-1), r, "sp")
			continue
		}
		assert.Equal(t, vm.Word(0), r, "register %d", i)
	}
	assert.False(t, s.Finished)
	assert.False(t, s.Sync)
}

func TestInstallResets(t *testing.T) {
	s := vm.NewState()
	s.Reg[vm.RegS0] = 42
	rom, err := vm.NewROM([]vm.Instr{{Op: vm.OpTerm}})
	assert.NoError(t, err)
	s.Install(rom)
	assert.Equal(t, vm.Word(0), s.Reg[vm.RegS0])
	assert.Equal(t, 0, s.PC)
}

func TestRegisterNameRoundTrip(t *testing.T) {
	for name, idx := range map[string]int{"ra": 0, "sp": 1, "s0": 2, "s5": 7} {
		got, ok := vm.RegisterIndex(name)
		assert.True(t, ok)
		assert.Equal(t, idx, got)
		assert.Equal(t, name, vm.RegisterName(idx))
	}
}
