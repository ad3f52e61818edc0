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

// The corevm command line tool compiles, assembles and runs programs
// for the corevm toolchain.
//
// Usage:
//
//	corevm compile <file.src>   compile source to assembly, printed to stdout (or -o)
//	corevm asm <file.s>         assemble to a binary image (-o required)
//	corevm run <file>           assemble/compile/load and run to completion
//
// Flags for run:
//
//	-image filename   save a vm.State snapshot to filename on exit
//	-interactive      switch stdin to raw mode; one keystroke feeds one sync
//	-clkfreq khz      throttle execution to approximately khz KHz
//	-clkslp duration  sleep interval used while throttling (default 16ms)
//	-debug            print a full error stack on failure
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	corevm "corevm"
	"corevm/image"
	"corevm/internal/cx"
	"corevm/lang"
	"corevm/vm"
)

var debug bool

func atExit(err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: corevm <compile|asm|run> <file> [flags]")
		os.Exit(2)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "compile":
		err = runCompile(args)
	case "asm":
		err = runAsm(args)
	case "run":
		err = runRun(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", cmd)
		os.Exit(2)
	}
	atExit(err)
}

func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	out := fs.String("o", "", "output `filename` (default stdout)")
	fs.BoolVar(&debug, "debug", false, "print a full error stack on failure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("compile requires exactly one source file")
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "read source")
	}
	asmText, err := lang.Compile(string(src))
	if err != nil {
		return errors.Wrap(err, "compile")
	}
	return writeOutput(*out, asmText)
}

func runAsm(args []string) error {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	out := fs.String("o", "", "output image `filename`")
	fs.BoolVar(&debug, "debug", false, "print a full error stack on failure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("asm requires exactly one assembly file")
	}
	if *out == "" {
		return errors.New("asm requires -o")
	}
	asmText, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "read assembly")
	}
	m := corevm.New()
	if err := m.Assemble(string(asmText)); err != nil {
		return errors.Wrap(err, "assemble")
	}
	return errors.Wrap(image.Save(*out, m.State()), "save image")
}

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	imageOut := fs.String("image", "", "save a snapshot to `filename` on exit")
	interactive := fs.Bool("interactive", false, "switch stdin to raw mode for one-keystroke-per-sync input")
	period := fs.Int64("clkfreq", 0, "throttle execution to approximately `khz` KHz (0 = unthrottled)")
	sleep := fs.Duration("clkslp", 16*time.Millisecond, "sleep interval used while throttling")
	fs.BoolVar(&debug, "debug", false, "print a full error stack on failure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("run requires exactly one file")
	}

	m, err := loadProgram(fs.Arg(0))
	if err != nil {
		return err
	}

	var stdin *bufio.Reader
	var restoreTTY func()
	if *interactive {
		restoreTTY, err = setRawIO()
		if err != nil {
			return errors.Wrap(err, "interactive mode")
		}
		defer restoreTTY()
	}
	stdin = bufio.NewReader(os.Stdin)
	bufOut := bufio.NewWriter(os.Stdout)
	stdout := cx.NewErrWriter(bufOut)
	defer bufOut.Flush()

	m.SetIOHandler(func(m *corevm.Machine) {
		if m.Output() != 0 {
			stdout.Write([]byte{byte(m.Output())})
		}
		b, rerr := stdin.ReadByte()
		if rerr == nil {
			m.SetInput(vm.Word(b))
		}
	})

	batch := 1000
	var throttle <-chan time.Time
	if *period > 0 {
		// One batch of khz * clkslp-in-ms instructions per sleep
		// interval gives khz thousand instructions per second.
		batch = int(*period * int64(*sleep) / int64(time.Millisecond))
		if batch < 1 {
			batch = 1
		}
		ticker := time.NewTicker(*sleep)
		defer ticker.Stop()
		throttle = ticker.C
	}
	for !m.Finished() {
		for i := 0; i < batch && !m.Finished(); i++ {
			if err := m.StepErr(); err != nil {
				return errors.Wrap(err, "runtime fault")
			}
		}
		if throttle != nil {
			<-throttle
		}
	}

	if stdout.Err != nil {
		return errors.Wrap(stdout.Err, "write output")
	}

	if *imageOut != "" {
		return errors.Wrap(image.Save(*imageOut, m.State()), "save image")
	}
	return nil
}

func loadProgram(name string) (*corevm.Machine, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".img":
		state, err := image.Load(name)
		if err != nil {
			return nil, errors.Wrap(err, "load image")
		}
		m := corevm.New()
		*m.State() = *state
		return m, nil
	case ".s", ".asm":
		text, err := os.ReadFile(name)
		if err != nil {
			return nil, errors.Wrap(err, "read assembly")
		}
		m := corevm.New()
		if err := m.Assemble(string(text)); err != nil {
			return nil, errors.Wrap(err, "assemble")
		}
		return m, nil
	default:
		text, err := os.ReadFile(name)
		if err != nil {
			return nil, errors.Wrap(err, "read source")
		}
		m := corevm.New()
		if err := m.Program(string(text)); err != nil {
			return nil, errors.Wrap(err, "compile")
		}
		return m, nil
	}
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Print(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
