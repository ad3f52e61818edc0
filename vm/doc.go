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

// Package vm implements the register machine that the assembler targets.
//
// A State owns all mutable state of one running program: a 16-slot
// register file (8 of which are named), 256 words of RAM doubling as a
// downward-growing stack, a program counter, and a pair of I/O latches
// used to exchange words with an embedding host.
//
// Execution is driven entirely by the host through Steps/Step; nothing
// runs until asked to. The only suspension points are an exhausted step
// budget and a sync instruction, at which point the host's I/O handler
// (if any) is invoked with a chance to read the current Output latch and
// set a new Input latch before execution resumes.
//
// For performance, the dispatch loop in exec.go matches on a closed
// instruction-kind enum exactly once per instruction; operand shapes that
// the assembler can prove ahead of time (register destinations, immediate
// sources) are compiled into dedicated instruction variants so the hot
// loop never pays for an interface call or a tagged-operand decode on the
// fast paths. Everything else falls back to a generic record whose
// operands are resolved through Operand.Get/Set at run time.
//
// The machine supports exactly one input and one output port: reads
// return the Input latch regardless of the addressed port number, and
// writes set the Output latch the same way.
package vm
