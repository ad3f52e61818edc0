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

// Package lang compiles the front-end source language to the textual
// assembly that package asm consumes.
//
// The language is line-oriented and imperative: integer literals, bare
// identifiers as mutable variables, binary operators grouped by
// precedence (loosest to tightest: |, ^, &, ==/!=, </>/<=/>=,
// <</>>/>>>, +/-; * and / are reserved and rejected by the lexer),
// parenthesized sub-expressions, assignment, if/end, while/end, and a
// single builtin call read(port) whose argument must be an integer
// literal.
//
//	a = 0
//	b = 1
//	while b <= 100
//		if b & 1
//			a = a + b
//		end
//		b = b + 1
//	end
//
// Lex and parse failures are individually *SyntaxError values at the
// offending row and column; a whole failed Compile call returns them
// aggregated into ErrSyntax (capped at 10, mirroring asm.ErrAsm): the
// lexer is run to completion up front, skipping past any bad character
// so later diagnostics aren't lost to the first one, and the parser
// recovers to the next statement boundary after a malformed statement
// for the same reason. Compile walks the parsed tree recursively and
// writes each assembly line to its output as soon as it is generated;
// every expression's value, integer literals included, lands in a slot
// of one integer-addressed namespace shared by named variables and
// transient temporaries, and temporaries are released back to the pool
// after each statement.
//
// The scan/reduce loop this package's parser is built from is a
// hand-written recursive-descent substitute for a literal shift/reduce
// table, which is an explicitly sanctioned substitution for this kind
// of grammar.
package lang
