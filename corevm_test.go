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

package corevm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	corevm "corevm"
	"corevm/vm"
)

// Sum of odd numbers 1..100: a=0; b=1; c=2; while b<=100 { if b&1 { a=a+b }
// b=b+1 }. The final value of a is 2500, stored at a's compiler-assigned
// slot.
func TestSumOfOddsEndToEnd(t *testing.T) {
	src := `
a = 0
b = 1
c = 2
while b <= 100
	if b & 1
		a = a + b
	end
	b = b + c - 1
end
`
	m := corevm.New()
	assert.NoError(t, m.Program(src))
	for !m.Finished() {
		assert.NoError(t, m.StepErr())
	}
	mem := m.Memory()
	assert.Equal(t, vm.Word(2500), mem[0]) // a
}

func TestCompileThenAssembleComputesSum(t *testing.T) {
	m := corevm.New()
	assert.NoError(t, m.Program("a = 2 + 3\n"))
	for !m.Finished() {
		assert.NoError(t, m.StepErr())
	}
	mem := m.Memory()
	assert.Equal(t, vm.Word(5), mem[0])
}

// Fibonacci(10) via hand-written assembly using the indirect call/return
// idiom: apc ra, 2 / jmp fib, with fib returning through j ra.
func TestFibonacciAssembly(t *testing.T) {
	asmSrc := `
	mv s0, 10
	apc ra, 2
	jmp fib
	halt
fib:
	push ra
	b< s0, 2, base
	push s0
	c- s0, s0, 1
	apc ra, 2
	jmp fib
	pop s1
	push s0
	mv s0, s1
	c- s0, s0, 2
	apc ra, 2
	jmp fib
	pop s2
	c+ s0, s0, s2
	pop ra
	j ra
base:
	pop ra
	j ra
`
	m := corevm.New()
	assert.NoError(t, m.Assemble(asmSrc))
	for !m.Finished() {
		assert.NoError(t, m.StepErr())
	}
	regs := m.Registers()
	assert.Equal(t, vm.Word(55), regs[vm.RegS0])
}

func TestSyncCallbackRoundTrip(t *testing.T) {
	asmSrc := `
loop:
	c+ s0, s0, 1
	sync
	b< s0, 5, loop
	halt
`
	m := corevm.New()
	assert.NoError(t, m.Assemble(asmSrc))
	var calls int
	m.SetIOHandler(func(m *corevm.Machine) {
		calls++
		m.SetInput(42)
	})
	for !m.Finished() {
		assert.NoError(t, m.StepErr())
	}
	regs := m.Registers()
	assert.Equal(t, vm.Word(5), regs[vm.RegS0])
	assert.Equal(t, 5, calls)
}

func TestUndefinedLabelSurfacesAsError(t *testing.T) {
	m := corevm.New()
	err := m.Assemble("jmp nowhere\n")
	assert.Error(t, err)
}

func TestCompileSyntaxErrorSurfaces(t *testing.T) {
	m := corevm.New()
	err := m.Program("a = 1 *\n")
	assert.Error(t, err)
}
