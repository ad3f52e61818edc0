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

// tokKind enumerates the lexer's token categories.
type tokKind int

const (
	tokEOF tokKind = iota
	tokEOL
	tokNumber
	tokIdent
	tokKeyword
	tokAssign // =
	tokLParen
	tokRParen
	tokComma
	tokOp // a binary operator, resolved further by text
)

// keywords recognized as reserved words rather than identifiers.
var keywords = map[string]bool{
	"if":    true,
	"while": true,
	"end":   true,
	"read":  true,
}

// opPrec assigns each binary operator's precedence, tightest (highest)
// binding first. * and / are deliberately absent: the lexer rejects
// them outright.
var opPrec = map[string]int{
	"+": 6, "-": 6,
	"<<": 5, ">>": 5, ">>>": 5,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"==": 3, "!=": 3,
	"&": 2,
	"^": 1,
	"|": 0,
}

type token struct {
	kind     tokKind
	text     string
	num      int32
	row, col int
}
