/*
 * multiwfn.go, part of orbitraj.
 *
 * Copyright 2024 The orbitraj Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package multiwfn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rmera/orbitraj"
)

// The ways a conversion can fail. All of them wrap orbitraj.ErrConversion.
var (
	ErrExecutableNotFound = fmt.Errorf("%w: Multiwfn executable not found", orbitraj.ErrConversion)
	ErrConversionFailed   = fmt.Errorf("%w: Multiwfn failed", orbitraj.ErrConversion)
	ErrOutputNotProduced  = fmt.Errorf("%w: Multiwfn produced no output", orbitraj.ErrConversion)
)

// GeometryScript also exports the geometry of the system to a PDB file
// after writing the ELF cube.
const GeometryScript = "5 9 2 2 0 100 2 1 some.pdb"

// Handle drives the Multiwfn program. Note that the defaults are NOT
// considered part of the API, so they can change.
type Handle struct {
	command    string
	script     []string
	output     string
	workdir    string
	extensions []string
}

// NewHandle returns a Handle with the default settings.
func NewHandle() *Handle {
	run := new(Handle)
	run.SetDefaults()
	return run
}

// NewHandleFromConfig returns a Handle with the default settings, overridden by
// the non-empty fields of C.
func NewHandleFromConfig(C orbitraj.MultiwfnConfig) *Handle {
	run := NewHandle()
	if C.Command != "" {
		run.SetCommand(C.Command)
	}
	if C.Script != "" {
		run.SetScript(C.Script)
	}
	if C.Output != "" {
		run.SetOutput(C.Output)
	}
	if len(C.Extensions) > 0 {
		run.extensions = append([]string(nil), C.Extensions...)
	}
	return run
}

/*Sets defaults for the conversion: the electron localization function
is computed on a medium-quality grid and exported to ELF.cub. The command
is set to $Multiwfnpath/Multiwfn, or to Multiwfn (to be found in the $PATH)
if Multiwfnpath is not defined.*/
func (H *Handle) SetDefaults() {
	H.command = os.ExpandEnv("${Multiwfnpath}/Multiwfn")
	if H.command == "/Multiwfn" { //if Multiwfnpath was not defined
		H.command = "Multiwfn"
	}
	H.SetScript("5 9 2 2")
	H.output = "ELF.cub"
	H.workdir = ""
	H.extensions = append([]string(nil), orbitraj.MultiwfnExtensions...)
}

func (H *Handle) Command() string { return H.command }

func (H *Handle) SetCommand(name string) { H.command = name }

// SetScript sets the menu selections fed to Multiwfn, separated by spaces.
func (H *Handle) SetScript(script string) { H.script = strings.Fields(script) }

// SetOutput sets the name of the file Multiwfn writes for the given script.
func (H *Handle) SetOutput(name string) { H.output = name }

// SetWorkDir sets the directory where Multiwfn runs. Empty means the current one.
func (H *Handle) SetWorkDir(dir string) { H.workdir = dir }

// Supported returns true if Multiwfn can convert the file at path, judging by its extension.
func (H *Handle) Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range H.extensions {
		if ext == v {
			return true
		}
	}
	return false
}

// CubePath returns the path of the cube file obtained by converting path.
func CubePath(path string) string {
	return path + ".cub"
}

// Convert runs Multiwfn on the file at path, and renames the cube file it
// produces to CubePath(path), which is returned. It blocks until Multiwfn exits
// or ctx is done, in which case Multiwfn is killed.
func (H *Handle) Convert(ctx context.Context, path string) (string, error) {
	outs, err := H.run(ctx, path, H.script, map[string]string{H.output: CubePath(path)})
	if err != nil {
		return "", orbitraj.ErrDecorate(err, "Convert")
	}
	return outs[0], nil
}

// ConvertWithGeometry works as Convert, but also exports the geometry of the
// system to path+".pdb". It returns the cube and PDB paths.
func (H *Handle) ConvertWithGeometry(ctx context.Context, path string) (cube, pdb string, err error) {
	pdb = path + ".pdb"
	outs, err := H.run(ctx, path, strings.Fields(GeometryScript), map[string]string{H.output: CubePath(path), "some.pdb": pdb})
	if err != nil {
		return "", "", orbitraj.ErrDecorate(err, "ConvertWithGeometry")
	}
	return outs[0], outs[1], nil
}

// Resolve converts the file at path if Multiwfn supports its format. Other files are
// assumed to be volumetric already, and their path is returned unchanged.
func (H *Handle) Resolve(ctx context.Context, path string) (string, error) {
	if !H.Supported(path) {
		return path, nil
	}
	return H.Convert(ctx, path)
}

// ConvertAll converts the files one after the other. A failure doesn't stop the batch:
// the returned slice has the cube path for each converted file, and an empty string for
// each failure. The failures are collected in the returned error, which is an
// *orbitraj.BatchError, or nil if all the files were converted.
func (H *Handle) ConvertAll(ctx context.Context, paths []string) ([]string, error) {
	ret := make([]string, len(paths))
	failed := &orbitraj.BatchError{Op: "multiwfn conversion"}
	for i, p := range paths {
		cube, err := H.Convert(ctx, p)
		if err != nil {
			orbitraj.Logf("orbitraj/multiwfn.ConvertAll: %s: %s", p, err.Error())
			failed.Add(p, err)
			continue
		}
		ret[i] = cube
	}
	return ret, failed.OrNil()
}

// outputs maps the fixed names of the files Multiwfn writes to the paths they will be
// renamed to. The destination paths are returned in the order given by the script's
// output first, then the rest in lexical order of their fixed name.
func (H *Handle) run(ctx context.Context, path string, script []string, outputs map[string]string) ([]string, error) {
	exe, err := exec.LookPath(H.command)
	if err != nil {
		return nil, orbitraj.NewError(ErrExecutableNotFound, err.Error(), path, "exec.LookPath")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, orbitraj.NewError(ErrConversionFailed, err.Error(), path, "filepath.Abs")
	}
	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, exe, abs)
	command.Dir = H.workdir
	command.Stdin = strings.NewReader(strings.Join(script, "\n") + "\n")
	command.Stderr = &stderr
	orbitraj.Logf("orbitraj/multiwfn: converting %s with %s (script: %s)", path, exe, strings.Join(script, " "))
	if err := command.Run(); err != nil {
		msg := err.Error()
		if ctx.Err() != nil {
			msg = "cancelled: " + ctx.Err().Error()
		}
		if tail := lastLine(stderr.String()); tail != "" {
			msg += ": " + tail
		}
		return nil, orbitraj.NewError(ErrConversionFailed, msg, path, "exec.Run")
	}
	names := sortedOutputs(H.output, outputs)
	ret := make([]string, 0, len(names))
	for _, name := range names {
		produced := filepath.Join(H.workdir, name)
		if _, err := os.Stat(produced); err != nil {
			return nil, orbitraj.NewError(ErrOutputNotProduced, fmt.Sprintf("expected %s", produced), path, "os.Stat")
		}
		dest := outputs[name]
		if err := os.Rename(produced, dest); err != nil {
			return nil, orbitraj.NewError(ErrConversionFailed, fmt.Sprintf("can't move %s to %s: %s", produced, dest, err.Error()), path, "os.Rename")
		}
		ret = append(ret, dest)
	}
	return ret, nil
}

func sortedOutputs(first string, outputs map[string]string) []string {
	names := make([]string, 0, len(outputs))
	if _, ok := outputs[first]; ok {
		names = append(names, first)
	}
	rest := make([]string, 0, len(outputs))
	for k := range outputs {
		if k != first {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// IsNotFound returns true if err is due to a missing Multiwfn executable.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExecutableNotFound)
}
