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

package lang

import (
	"fmt"
	"strings"
)

// aluMnemonic maps a binary operator's source spelling to the
// assembly mnemonic package asm expects. c> and c<= are emitted
// as-is; asm itself performs the operand-swap rewrite down to the
// four canonical comparisons.
var aluMnemonic = map[string]string{
	"+": "c+", "-": "c-",
	"<<": "c<<", ">>": "c>>", ">>>": "c>>>",
	"&": "c&", "^": "c^", "|": "c|",
	"==": "c==", "!=": "c!=",
	"<": "c<", ">": "c>", "<=": "c<=", ">=": "c>=",
}

// codegen walks a parsed statement list and emits assembly text,
// addressing every variable and transient value through one
// integer-indexed memory namespace. varCount hands out permanent
// variable slots; tempCount hands out transient slots and is reset
// back to varCount after each statement, so temporaries never
// outlive the statement that produced them.
type codegen struct {
	out        strings.Builder
	vars       map[string]int
	varCount   int
	tempCount  int
	labelCount int
}

func newCodegen() *codegen {
	return &codegen{vars: make(map[string]int)}
}

// Compile lexes, parses and lowers src into assembly text ready for
// package asm.
func Compile(src string) (string, error) {
	stmts, err := parseProgram(src)
	if err != nil {
		return "", err
	}
	cg := newCodegen()
	for _, s := range stmts {
		if err := cg.genStmt(s); err != nil {
			return "", err
		}
	}
	return cg.out.String(), nil
}

func (cg *codegen) emit(format string, args ...interface{}) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

func (cg *codegen) newTemp() int {
	slot := cg.tempCount
	cg.tempCount++
	return slot
}

func (cg *codegen) newLabel(hint string) string {
	cg.labelCount++
	return fmt.Sprintf("L%s%d", hint, cg.labelCount)
}

// assignSlot resolves name to its variable slot, allocating a new one
// on first assignment.
func (cg *codegen) assignSlot(name string) int {
	if slot, ok := cg.vars[name]; ok {
		return slot
	}
	slot := cg.varCount
	cg.vars[name] = slot
	cg.varCount++
	return slot
}

func (cg *codegen) genStmt(n node) error {
	switch v := n.(type) {
	case *assignNode:
		src, err := cg.genExpr(v.val)
		if err != nil {
			return err
		}
		dst := cg.assignSlot(v.name)
		cg.emit("mv [%d], [%d]", dst, src)

	case *ifNode:
		cond, err := cg.genExpr(v.cond)
		if err != nil {
			return err
		}
		endLabel := cg.newLabel("ifend")
		cg.emit("b== [%d], 0, %s", cond, endLabel)
		cg.resetTemps()
		for _, s := range v.body {
			if err := cg.genStmt(s); err != nil {
				return err
			}
		}
		cg.emit("%s:", endLabel)

	case *whileNode:
		loopLabel := cg.newLabel("loop")
		condLabel := cg.newLabel("condi")
		cg.emit("jmp %s", condLabel)
		cg.emit("%s:", loopLabel)
		for _, s := range v.body {
			if err := cg.genStmt(s); err != nil {
				return err
			}
		}
		cg.emit("%s:", condLabel)
		cond, err := cg.genExpr(v.cond)
		if err != nil {
			return err
		}
		cg.emit("b!= [%d], 0, %s", cond, loopLabel)

	default:
		return fmt.Errorf("lang: unhandled statement node %T", n)
	}
	cg.resetTemps()
	return nil
}

func (cg *codegen) resetTemps() {
	cg.tempCount = cg.varCount
}

// genExpr lowers an expression, returning the memory slot holding its
// value once evaluated.
func (cg *codegen) genExpr(n node) (int, error) {
	switch v := n.(type) {
	case *numberNode:
		slot := cg.newTemp()
		cg.emit("mv [%d], %d", slot, v.val)
		return slot, nil

	case *fieldNode:
		slot, ok := cg.vars[v.name]
		if !ok {
			return 0, fmt.Errorf("lang: undefined variable %q", v.name)
		}
		return slot, nil

	case *binaryNode:
		left, err := cg.genExpr(v.left)
		if err != nil {
			return 0, err
		}
		right, err := cg.genExpr(v.right)
		if err != nil {
			return 0, err
		}
		mnemonic, ok := aluMnemonic[v.op]
		if !ok {
			return 0, fmt.Errorf("lang: unknown operator %q", v.op)
		}
		slot := cg.newTemp()
		cg.emit("%s [%d], [%d], [%d]", mnemonic, slot, left, right)
		return slot, nil

	case *readNode:
		slot := cg.newTemp()
		cg.emit("in [%d], %d", slot, v.port)
		return slot, nil

	default:
		return 0, fmt.Errorf("lang: unhandled expression node %T", n)
	}
}
