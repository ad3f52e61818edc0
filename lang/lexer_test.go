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
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	lx := newLexer(src)
	var toks []token
	for {
		tok, err := lx.next()
		assert.NoError(t, err)
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexerBasicTokens(t *testing.T) {
	toks := lexAll(t, "a = b + 1")
	kinds := make([]tokKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.kind
	}
	assert.Equal(t, []tokKind{tokIdent, tokAssign, tokIdent, tokOp, tokNumber, tokEOF}, kinds)
}

func TestLexerKeywords(t *testing.T) {
	toks := lexAll(t, "if while end read")
	for _, tok := range toks[:4] {
		assert.Equal(t, tokKeyword, tok.kind)
	}
}

func TestLexerLongestOperatorMatch(t *testing.T) {
	toks := lexAll(t, "a >>> b >= c")
	assert.Equal(t, ">>>", toks[1].text)
	assert.Equal(t, ">=", toks[3].text)
}

func TestLexerHexNumber(t *testing.T) {
	toks := lexAll(t, "0x2A")
	assert.EqualValues(t, 42, toks[0].num)
}

func TestLexerSemicolonAsEOL(t *testing.T) {
	toks := lexAll(t, "a = 1; b = 2")
	var eolCount int
	for _, tok := range toks {
		if tok.kind == tokEOL {
			eolCount++
		}
	}
	assert.Equal(t, 1, eolCount)
}

func TestLexerRejectsMultiplyAndDivide(t *testing.T) {
	lx := newLexer("a * b")
	_, err := lx.next() // a
	assert.NoError(t, err)
	_, err = lx.next() // *
	assert.Error(t, err)
}
