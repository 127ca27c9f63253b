/*
 * multiwfn_test.go, part of orbitraj.
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
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rmera/orbitraj"
)

// fakeMultiwfn writes a shell script standing for Multiwfn in dir. The script
// writes what it reads from stdin, then its argument, to ELF.cub and some.pdb,
// unless behavior is "fail" (exit status 3) or "silent" (no output).
func fakeMultiwfn(Te *testing.T, dir, behavior string) string {
	Te.Helper()
	if runtime.GOOS == "windows" {
		Te.Skip("the fake Multiwfn needs a POSIX shell")
	}
	body := "#!/bin/sh\n"
	switch behavior {
	case "fail":
		body += "cat > /dev/null\necho 'Error: cannot read wavefunction' >&2\nexit 3\n"
	case "silent":
		body += "cat > /dev/null\nexit 0\n"
	default:
		body += "cat > ELF.cub\necho \"$1\" >> ELF.cub\necho pdb > some.pdb\nexit 0\n"
	}
	path := filepath.Join(dir, "Multiwfn")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		Te.Fatal(err)
	}
	return path
}

func newTestHandle(Te *testing.T, behavior string) (*Handle, string) {
	bin := Te.TempDir()
	work := Te.TempDir()
	H := NewHandle()
	H.SetCommand(fakeMultiwfn(Te, bin, behavior))
	H.SetWorkDir(work)
	inputs := Te.TempDir()
	return H, inputs
}

func writeInput(Te *testing.T, dir, name string) string {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("wavefunction"), 0o644); err != nil {
		Te.Fatal(err)
	}
	return p
}

func TestSupported(Te *testing.T) {
	H := NewHandle()
	for _, p := range []string{"a.wfn", "b.wfx", "c.fch", "d.molden", "e.gms", "f.31", "g.40", "UPPER.WFN"} {
		if !H.Supported(p) {
			Te.Errorf("%s should be supported", p)
		}
	}
	for _, p := range []string{"a.cub", "b.cube", "c.41", "d.30", "e", "f.wfn.cub"} {
		if H.Supported(p) {
			Te.Errorf("%s should not be supported", p)
		}
	}
}

func TestDefaults(Te *testing.T) {
	Te.Setenv("Multiwfnpath", "")
	if c := NewHandle().Command(); c != "Multiwfn" {
		Te.Errorf("expected Multiwfn, got %s", c)
	}
	Te.Setenv("Multiwfnpath", "/opt/Multiwfn_3.8")
	if c := NewHandle().Command(); c != "/opt/Multiwfn_3.8/Multiwfn" {
		Te.Errorf("unexpected command %s", c)
	}
	H := NewHandleFromConfig(orbitraj.MultiwfnConfig{Command: "mwfn", Extensions: []string{".xyzw"}})
	if H.Command() != "mwfn" || !H.Supported("x.xyzw") || H.Supported("x.wfn") {
		Te.Error("configuration not applied")
	}
	if strings.Join(H.script, " ") != "5 9 2 2" || H.output != "ELF.cub" {
		Te.Error("defaults lost")
	}
}

func TestConvert(Te *testing.T) {
	H, inputs := newTestHandle(Te, "ok")
	in := writeInput(Te, inputs, "frame1.wfn")
	cube, err := H.Convert(context.Background(), in)
	if err != nil {
		Te.Fatal(err)
	}
	if cube != in+".cub" {
		Te.Errorf("expected %s, got %s", in+".cub", cube)
	}
	data, err := os.ReadFile(cube)
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if strings.Join(lines[:4], " ") != "5 9 2 2" {
		Te.Errorf("the script was not fed one selection per line: %q", lines)
	}
	if abs, _ := filepath.Abs(in); lines[4] != abs {
		Te.Errorf("Multiwfn should get the absolute input path, got %s", lines[4])
	}
	if _, err := os.Stat(filepath.Join(H.workdir, "ELF.cub")); !os.IsNotExist(err) {
		Te.Error("the fixed-name output should have been moved")
	}
}

func TestConvertWithGeometry(Te *testing.T) {
	H, inputs := newTestHandle(Te, "ok")
	in := writeInput(Te, inputs, "frame.molden")
	cube, pdb, err := H.ConvertWithGeometry(context.Background(), in)
	if err != nil {
		Te.Fatal(err)
	}
	if cube != in+".cub" || pdb != in+".pdb" {
		Te.Errorf("unexpected outputs %s %s", cube, pdb)
	}
	for _, p := range []string{cube, pdb} {
		if _, err := os.Stat(p); err != nil {
			Te.Error(err)
		}
	}
}

func TestConvertErrors(Te *testing.T) {
	H, inputs := newTestHandle(Te, "fail")
	in := writeInput(Te, inputs, "bad.wfn")
	_, err := H.Convert(context.Background(), in)
	if !errors.Is(err, ErrConversionFailed) || !errors.Is(err, orbitraj.ErrConversion) {
		Te.Errorf("expected a failed conversion, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "cannot read wavefunction") {
		Te.Errorf("stderr should be in the message: %v", err)
	}

	H, inputs = newTestHandle(Te, "silent")
	in = writeInput(Te, inputs, "quiet.wfn")
	if _, err = H.Convert(context.Background(), in); !errors.Is(err, ErrOutputNotProduced) {
		Te.Errorf("expected no output, got %v", err)
	}

	H.SetCommand(filepath.Join(Te.TempDir(), "nothing-here"))
	if _, err = H.Convert(context.Background(), in); !IsNotFound(err) {
		Te.Errorf("expected a missing executable, got %v", err)
	}
}

func TestResolve(Te *testing.T) {
	H, inputs := newTestHandle(Te, "ok")
	cub := writeInput(Te, inputs, "density.cub")
	got, err := H.Resolve(context.Background(), cub)
	if err != nil || got != cub {
		Te.Errorf("cube files should pass through, got %s %v", got, err)
	}
	wfn := writeInput(Te, inputs, "orbital.wfn")
	got, err = H.Resolve(context.Background(), wfn)
	if err != nil || got != wfn+".cub" {
		Te.Errorf("expected %s.cub, got %s %v", wfn, got, err)
	}
}

func TestConvertAllKeepsGoing(Te *testing.T) {
	H, inputs := newTestHandle(Te, "ok")
	a := writeInput(Te, inputs, "a.wfn")
	b := filepath.Join(inputs, "missing", "b.wfn") //Multiwfn runs, but the destination directory doesn't exist.
	c := writeInput(Te, inputs, "c.wfn")
	cubes, err := H.ConvertAll(context.Background(), []string{a, b, c})
	var batch *orbitraj.BatchError
	if !errors.As(err, &batch) {
		Te.Fatalf("expected a *orbitraj.BatchError, got %v", err)
	}
	if batch.Len() != 1 || batch.Failed(b) == nil {
		Te.Errorf("only %s should have failed: %v", b, batch)
	}
	if cubes[0] != a+".cub" || cubes[1] != "" || cubes[2] != c+".cub" {
		Te.Errorf("unexpected results %v", cubes)
	}
}

func TestConvertCancelled(Te *testing.T) {
	H, inputs := newTestHandle(Te, "ok")
	in := writeInput(Te, inputs, "late.wfn")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := H.Convert(ctx, in); !errors.Is(err, ErrConversionFailed) {
		Te.Errorf("a cancelled conversion should fail, got %v", err)
	}
}
