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

// SyntaxError reports a lex or parse failure at a specific source
// position, one-indexed as in most editors.
type SyntaxError struct {
	Row, Col int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Row, e.Col, e.Msg)
}

// ErrSyntax aggregates up to maxErrors SyntaxError values produced
// while lexing and parsing one source, mirroring asm.ErrAsm: callers
// that don't care about individual diagnostics can just check
// err != nil, and callers that do can type-assert to ErrSyntax.
type ErrSyntax []*SyntaxError

func (e ErrSyntax) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, err.Error())
	}
	return strings.Join(l, "\n")
}

// maxErrors caps how many diagnostics a single lex+parse pass collects
// before giving up on finding more, matching asm.maxErrors.
const maxErrors = 10
