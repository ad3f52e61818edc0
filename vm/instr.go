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

// Op enumerates every instruction kind the dispatch loop understands. The
// set is closed and matched exactly once per step; it is deliberately
// larger than the assembly mnemonic table because several mnemonics
// compile to more than one Op depending on operand shape (a register
// destination with an immediate source is a different, cheaper Op than
// the fully generic form).
type Op byte

const (
	OpNop Op = iota
	OpTerm

	// mv d s
	OpMv       // generic: Dst, Src operands
	OpMvRegImm // specialized: Dst register index, Imm literal

	// c<op> d s1 s2 -- arithmetic/logical/comparison, result in d
	OpALU       // generic: ALUOp, Dst, Src1, Src2 operands
	OpALURegRegImm // specialized: ALUOp, Dst/RegA register index, Imm literal; computes RegA <op> Imm (the assembler emits it only for c+)

	// b<cmp> s1 s2 label -- conditional branch
	OpBranch       // generic: Cond, Src1, Src2 operands, Target
	OpBranchRegReg // specialized: Cond, RegA, RegB, Target
	OpBranchRegImm // specialized: Cond, Reg, Imm, Target

	OpJmp    // unconditional jump to Target
	OpJmpReg // unconditional jump to address held in RegA

	OpApc // apc d k -- d = pc + k (return-address computation)

	OpIn  // in d port shift -- Dst (settable operand), Shift
	OpOut // out port s shift -- Src (operand), Shift

	OpSync // sync -- yield to host I/O handler

	OpPush // push s1 .. sn
	OpPop  // pop s1 .. sn
)

// ALUOp enumerates the binary operator family used by c<op> instructions.
// >, <= are not members: the assembler rewrites "c> a b" to "c< b a" and
// "c<= a b" to "c>= b a" at assembly time, so the interpreter only ever
// sees the four canonical comparisons.
type ALUOp byte

const (
	ALUAdd ALUOp = iota
	ALUSub
	ALUShl
	ALUShr       // arithmetic (sign-extending)
	ALUShrLogical
	ALUAnd
	ALUXor
	ALUOr
	ALUEq
	ALUNe
	ALULt
	ALUGe
)

// Cond enumerates the branch-condition family used by b<cmp>
// instructions. Like ALUOp, only the canonical four comparisons are
// represented; b> and b<= are rewritten to b< / b>= with swapped operands
// by the assembler.
type Cond byte

const (
	CondEq Cond = iota
	CondNe
	CondLt
	CondGe
)

// Instr is one assembled instruction record. Which fields are meaningful
// is determined entirely by Op; unused fields are zero. Dst/RegA/RegB
// hold register indices, Imm an immediate literal, Target a resolved
// branch/jump destination already adjusted by the "stored target is
// label_index - 1" convention so the dispatch loop's unconditional pc++
// lands exactly on the label. OperA/OperB/OperC are the generic
// tagged-operand fallback used whenever a shape wasn't specialized.
type Instr struct {
	Op Op

	Dst  int
	RegA int
	RegB int
	Imm  int32

	Target int

	ALU  ALUOp
	Cond Cond

	Port  int32
	Shift uint

	OperA Operand
	OperB Operand
	OperC Operand

	// Args holds the variadic operand list for OpPush/OpPop, already in
	// the order the interpreter should apply them (the assembler reverses
	// a "pop s1, s2, s3" source line into [s3, s2, s1] at parse time so
	// execution can just iterate forward).
	Args []Operand
}
