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

// Package asm assembles the textual instruction set into a vm.ROM.
//
// Grammar, informally:
//
//	mv   d, s              d = s
//	c+ c- c<< c>> c>>>     d, s1, s2        d = s1 <op> s2
//	c&  c^  c|
//	c== c!= c< c>= c> c<=  d, s1, s2        d = (s1 <cmp> s2) ? 1 : 0
//	b== b!= b< b>= b> b<=  s1, s2, label    branch to label if s1 <cmp> s2
//	jmp label              unconditional jump
//	j   reg                unconditional indirect jump through reg
//	apc d, k               d = pc + k
//	in  d, port[, shift]   d = d | (input << shift); port is parsed, unused
//	out port, s[, shift]   output = s >> shift
//	sync                   yield to host
//	push s1, s2, ...       push operands, left to right
//	pop  d1, d2, ...       pop into destinations, right to left, so that
//	                       "pop a, b" undoes "push a, b"
//	halt                   terminate immediately
//	label:                 define label at the current instruction, no
//	                       embedded space between the name and ':'
//
// Operands are registers (x0..x7, or the aliases ra, sp, s0..s5), integer
// or character-literal immediates, memory references in brackets ([s0],
// [100], [[s0]]), or the keyword "port" for the single I/O port. Label
// names are accepted only as the target of jmp and the b<cmp> branches,
// not as general operands.
//
// Mnemonics, register names and "port" are matched case-folded; label
// and variable names are not.
//
// Comments run from a semicolon to the end of the line.
//
// b> and b<= (and c> / c<=) are not primitive: the parser rewrites "b> a,
// b, label" to "b< b, a, label" and "b<= a, b, label" to "b>= b, a,
// label" (likewise for c>/c<=), so the interpreter only ever sees the
// four canonical comparisons.
//
// Each source line producing an instruction maps to exactly one ROM
// record; labels are resolved in two passes: forward references are
// recorded as they are encountered and backpatched once the whole source
// has been scanned, with the stored target equal to the label's
// instruction index minus one, compensating for the interpreter's
// unconditional pc++ after every instruction.
package asm
