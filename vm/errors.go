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

import "fmt"

// RuntimeError reports a fault raised while stepping the machine: an
// out-of-range memory access, a stack overflow or underflow, or a program
// counter outside the ROM (which also covers stepping a State with no ROM
// installed). Stepping a Finished machine is not a fault. PC is the
// program counter at the moment of the fault.
type RuntimeError struct {
	PC  int
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("vm: runtime error at pc=%d: %s", e.PC, e.Msg)
}
