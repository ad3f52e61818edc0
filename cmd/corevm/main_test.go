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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	corevm "corevm"
	"corevm/image"
)

func TestAsmThenRunViaImage(t *testing.T) {
	m := corevm.New()
	assert.NoError(t, m.Assemble("mv s0, 41\nc+ s0, s0, 1\nhalt\n"))
	for !m.Finished() {
		assert.NoError(t, m.StepErr())
	}
	path := filepath.Join(t.TempDir(), "out.img")
	assert.NoError(t, image.Save(path, m.State()))

	loaded, err := image.Load(path)
	assert.NoError(t, err)
	assert.True(t, loaded.Finished)
}

func TestLoadProgramDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.src")
	assert.NoError(t, os.WriteFile(srcPath, []byte("a = 1 + 1\n"), 0o644))
	m, err := loadProgram(srcPath)
	assert.NoError(t, err)
	for !m.Finished() {
		assert.NoError(t, m.StepErr())
	}
	mem := m.Memory()
	assert.Equal(t, int32(2), int32(mem[0]))
}
