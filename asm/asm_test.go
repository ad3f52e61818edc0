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

package asm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"corevm/asm"
	"corevm/vm"
)

func assemble(t *testing.T, src string) *vm.ROM {
	t.Helper()
	rom, err := asm.Assemble("test", strings.NewReader(src))
	assert.NoError(t, err)
	return rom
}

func TestAssembleSpecializesMvRegImm(t *testing.T) {
	rom := assemble(t, `mv s0, 42`)
	assert.Equal(t, vm.OpMvRegImm, rom.Code[0].Op)
	assert.Equal(t, int(vm.RegS0), rom.Code[0].Dst)
	assert.EqualValues(t, 42, rom.Code[0].Imm)
}

func TestAssembleSpecializesALURegRegImm(t *testing.T) {
	rom := assemble(t, `c+ s0, s1, 3`)
	assert.Equal(t, vm.OpALURegRegImm, rom.Code[0].Op)
	assert.Equal(t, vm.ALUAdd, rom.Code[0].ALU)

	// commuted form, Imm first
	rom = assemble(t, `c+ s0, 3, s1`)
	assert.Equal(t, vm.OpALURegRegImm, rom.Code[0].Op)
	assert.Equal(t, int(vm.RegS1), rom.Code[0].RegA)
	assert.EqualValues(t, 3, rom.Code[0].Imm)
}

func TestAssembleALUGenericFallback(t *testing.T) {
	rom := assemble(t, `c- s0, s1, s2`)
	assert.Equal(t, vm.OpALU, rom.Code[0].Op)
	assert.Equal(t, vm.ALUSub, rom.Code[0].ALU)
}

func TestAssembleGreaterThanRewrite(t *testing.T) {
	rom := assemble(t, `c> s0, s1, s2`)
	assert.Equal(t, vm.ALULt, rom.Code[0].ALU)
	assert.Equal(t, vm.Reg(int(vm.RegS2)), rom.Code[0].OperB)
	assert.Equal(t, vm.Reg(int(vm.RegS1)), rom.Code[0].OperC)
}

func TestAssembleBranchSpecialization(t *testing.T) {
	rom := assemble(t, `
		b== s0, s1, target
		nop
	target:
		halt
	`)
	assert.Equal(t, vm.OpBranchRegReg, rom.Code[0].Op)
	assert.Equal(t, 1, rom.Code[0].Target) // landing index 2, stored as 2-1
}

func TestAssembleForwardAndBackwardLabels(t *testing.T) {
	rom := assemble(t, `
		jmp forward
	back:
		nop
	forward:
		jmp back
	`)
	assert.Equal(t, 1, rom.Code[0].Target) // -> index 2 (forward)
	assert.Equal(t, 0, rom.Code[2].Target) // -> index 1 (back)
}

func TestAssemblePushPopReversal(t *testing.T) {
	rom := assemble(t, `
		push s0, s1, s2
		pop s0, s1, s2
	`)
	assert.Equal(t, []vm.Operand{vm.Reg(int(vm.RegS0)), vm.Reg(int(vm.RegS1)), vm.Reg(int(vm.RegS2))}, rom.Code[0].Args)
	assert.Equal(t, []vm.Operand{vm.Reg(int(vm.RegS2)), vm.Reg(int(vm.RegS1)), vm.Reg(int(vm.RegS0))}, rom.Code[1].Args)
}

func TestAssembleInOutDefaultShift(t *testing.T) {
	rom := assemble(t, `
		in s0, port
		out port, s1
	`)
	assert.Equal(t, vm.OpIn, rom.Code[0].Op)
	assert.Equal(t, vm.Reg(int(vm.RegS0)), rom.Code[0].OperA)
	assert.EqualValues(t, 0, rom.Code[0].Shift)

	assert.Equal(t, vm.OpOut, rom.Code[1].Op)
	assert.Equal(t, vm.Reg(int(vm.RegS1)), rom.Code[1].OperA)
	assert.EqualValues(t, 0, rom.Code[1].Shift)
}

func TestAssembleInOutExplicitShift(t *testing.T) {
	rom := assemble(t, `
		in s0, port, 8
		out port, s1, 4
	`)
	assert.Equal(t, vm.OpIn, rom.Code[0].Op)
	assert.EqualValues(t, 8, rom.Code[0].Shift)

	assert.Equal(t, vm.OpOut, rom.Code[1].Op)
	assert.EqualValues(t, 4, rom.Code[1].Shift)
}

func TestAssembleRegisterXAliases(t *testing.T) {
	rom := assemble(t, `mv x2, x0`)
	assert.Equal(t, vm.OpMv, rom.Code[0].Op)
	assert.Equal(t, vm.Reg(int(vm.RegS0)), rom.Code[0].OperA)
	assert.Equal(t, vm.Reg(int(vm.RegRA)), rom.Code[0].OperB)
}

func TestAssembleCaseFoldsKeywords(t *testing.T) {
	rom := assemble(t, `
		MV S0, 1
		IN S1, PORT
	`)
	assert.Equal(t, vm.OpMvRegImm, rom.Code[0].Op)
	assert.Equal(t, vm.OpIn, rom.Code[1].Op)
	assert.Equal(t, vm.Reg(int(vm.RegS1)), rom.Code[1].OperA)
}

func TestAssembleSuffixColonLabel(t *testing.T) {
	rom := assemble(t, `
		jmp there
	there:
		halt
	`)
	assert.Equal(t, 0, rom.Code[0].Target) // -> index 1, stored as 1-1
}

func TestAssembleUndefinedLabelError(t *testing.T) {
	_, err := asm.Assemble("test", strings.NewReader(`jmp nowhere`))
	assert.Error(t, err)
	errs, ok := err.(asm.ErrAsm)
	assert.True(t, ok)
	assert.Len(t, errs, 1)
}

func TestAssembleComment(t *testing.T) {
	rom := assemble(t, "mv s0, 1 ; this is a comment\nmv s1, 2")
	assert.Equal(t, vm.OpMvRegImm, rom.Code[0].Op)
	assert.Equal(t, vm.OpMvRegImm, rom.Code[1].Op)
}

func TestAssembleMemOperand(t *testing.T) {
	rom := assemble(t, `mv [s0], 7`)
	assert.Equal(t, vm.OpMv, rom.Code[0].Op)
	assert.Equal(t, vm.OpMem, rom.Code[0].OperA.Kind)
}

func TestAssembleRetainsSourceLines(t *testing.T) {
	rom := assemble(t, "mv s0, 1\nc+ s0, s0, 1")
	assert.Equal(t, []string{"mv s0, 1", "c+ s0, s0, 1", "", ""}, rom.Source[:4])

	var buf strings.Builder
	asm.Disassemble(rom, 0, &buf)
	assert.Contains(t, buf.String(), "; mv s0, 1")
}

func TestAssembleTooManyInstructions(t *testing.T) {
	var b strings.Builder
	for i := 0; i < vm.MaxUserInstructions+1; i++ {
		b.WriteString("nop\n")
	}
	_, err := asm.Assemble("test", strings.NewReader(b.String()))
	assert.Error(t, err)
}
