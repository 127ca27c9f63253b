/*
 * cube.go, part of orbitraj.
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

package cube

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/orbitraj"
	v3 "github.com/rmera/orbitraj/v3"
	"gonum.org/v1/gonum/mat"
)

// zstd.Decoder has a Close method that returns nothing, so it doesn't
// implement io.ReadCloser.
type zstdCloser struct {
	closefunc func()
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.closefunc()
	return nil
}

// newReader returns a reader over f that decompresses it if the name
// of the file says it is compressed.
func newReader(name string, f io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		r, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return zstdCloser{r.Close, r}, nil
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(f)
	default:
		return io.NopCloser(f), nil
	}
}

func newWriter(name string, f io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriterLevel(f, gzip.DefaultCompression)
	default:
		return nopWriteCloser{f}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Read reads the cube file name, which can be compressed with gzip or zstd.
func Read(name string) (*Grid, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"os.Open", "Read"}, true}
	}
	defer f.Close()
	r, err := newReader(name, bufio.NewReader(f))
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"newReader", "Read"}, true}
	}
	defer r.Close()
	G, err := Decode(r)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			err = e
		}
		return nil, errDecorate(err, "Read")
	}
	return G, nil
}

// lineReader hands out the fields of each non-empty line.
type lineReader struct {
	s    *bufio.Scanner
	line int
}

func (l *lineReader) next() (string, error) {
	if !l.s.Scan() {
		if err := l.s.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	l.line++
	return l.s.Text(), nil
}

func (l *lineReader) fields(min int) ([]string, error) {
	t, err := l.next()
	if err != nil {
		return nil, err
	}
	f := strings.Fields(t)
	if len(f) < min {
		return nil, fmt.Errorf("line %d: %d fields, at least %d expected", l.line, len(f), min)
	}
	return f, nil
}

func parseFloats(f []string) ([]float64, error) {
	ret := make([]float64, len(f))
	var err error
	for i, v := range f {
		ret[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Decode reads a cube from r.
func Decode(r io.Reader) (*Grid, error) {
	fail := func(err error) (*Grid, error) {
		return nil, Error{ReadError + ": " + err.Error(), "", []string{"Decode"}, true}
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	l := &lineReader{s: s}
	G := new(Grid)
	var err error
	for i := range G.Comments {
		if G.Comments[i], err = l.next(); err != nil {
			return fail(err)
		}
	}
	f, err := l.fields(4)
	if err != nil {
		return fail(err)
	}
	natoms, err := strconv.Atoi(f[0])
	if err != nil {
		return fail(err)
	}
	origin, err := parseFloats(f[1:4])
	if err != nil {
		return fail(err)
	}
	copy(G.Origin[:], origin)
	axes := make([]float64, 0, 9)
	for a := 0; a < 3; a++ {
		f, err = l.fields(4)
		if err != nil {
			return fail(err)
		}
		n, err := strconv.Atoi(f[0])
		if err != nil {
			return fail(err)
		}
		//A negative number of points means the coordinates are in Angstrom.
		if n < 0 {
			G.Angstrom = true
			n = -n
		}
		if n == 0 {
			return fail(fmt.Errorf("no points along axis %d", a))
		}
		G.N[a] = n
		vec, err := parseFloats(f[1:4])
		if err != nil {
			return fail(err)
		}
		axes = append(axes, vec...)
	}
	G.Axes = mat.NewDense(3, 3, axes)
	if err := G.setInverse(); err != nil {
		return nil, errDecorate(err, "Decode")
	}
	orbitals := natoms < 0
	if orbitals {
		natoms = -natoms
	}
	G.AtomicNumbers = make([]int, natoms)
	G.Charges = make([]float64, natoms)
	G.Atoms = v3.Zeros(natoms)
	for i := 0; i < natoms; i++ {
		f, err = l.fields(5)
		if err != nil {
			return fail(err)
		}
		if G.AtomicNumbers[i], err = strconv.Atoi(f[0]); err != nil {
			return fail(err)
		}
		vals, err := parseFloats(f[1:5])
		if err != nil {
			return fail(err)
		}
		G.Charges[i] = vals[0]
		G.Atoms.SetVec(i, [3]float64{vals[1], vals[2], vals[3]})
	}
	norb := 1
	var pending []string
	if orbitals {
		//The orbital line: the number of orbitals followed by their indexes.
		//Some programs wrap it, so we keep reading until we have them all.
		f, err = l.fields(1)
		if err != nil {
			return fail(err)
		}
		norb, err = strconv.Atoi(f[0])
		if err != nil || norb < 1 {
			return fail(fmt.Errorf("invalid number of orbitals %q", f[0]))
		}
		f = f[1:]
		for len(f) < norb {
			more, err := l.fields(1)
			if err != nil {
				return fail(err)
			}
			f = append(f, more...)
		}
		for _, v := range f[:norb] {
			o, err := strconv.Atoi(v)
			if err != nil {
				return fail(err)
			}
			G.Orbitals = append(G.Orbitals, o)
		}
		pending = f[norb:]
	}
	G.Values = make([]float64, G.Len())
	total := G.Len() * norb
	read := 0
	take := func(fields []string) error {
		for _, v := range fields {
			if read >= total {
				return nil
			}
			if read%norb == 0 {
				val, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return err
				}
				G.Values[read/norb] = val
			}
			read++
		}
		return nil
	}
	if err := take(pending); err != nil {
		return fail(err)
	}
	for read < total {
		t, err := l.next()
		if err != nil {
			return fail(fmt.Errorf("%d values read, %d expected: %w", read, total, err))
		}
		if err := take(strings.Fields(t)); err != nil {
			return fail(err)
		}
	}
	return G, nil
}

// Write writes G to the file name, compressing it if name ends in .gz or .zst.
func Write(name string, G *Grid) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{UnableToCreate + ": " + err.Error(), name, []string{"os.Create", "Write"}, true}
	}
	defer f.Close()
	w, err := newWriter(name, f)
	if err != nil {
		return Error{UnableToCreate + ": " + err.Error(), name, []string{"newWriter", "Write"}, true}
	}
	if err := Encode(w, G); err != nil {
		w.Close()
		return errDecorate(err, "Write")
	}
	if err := w.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), name, []string{"Close", "Write"}, true}
	}
	return f.Close()
}

// Encode writes G to w in the cube format. Only one orbital is written
// for orbital cubes.
func Encode(w io.Writer, G *Grid) error {
	if G == nil || G.Axes == nil || len(G.Values) != G.Len() {
		return Error{"Incomplete grid", "", []string{"Encode"}, true}
	}
	b := bufio.NewWriter(w)
	for _, c := range G.Comments {
		fmt.Fprintln(b, strings.TrimRight(c, "\n"))
	}
	natoms := G.NAtoms()
	if len(G.Orbitals) > 0 {
		natoms = -natoms
	}
	fmt.Fprintf(b, "%5d%12.6f%12.6f%12.6f\n", natoms, G.Origin[0], G.Origin[1], G.Origin[2])
	for a := 0; a < 3; a++ {
		n := G.N[a]
		if G.Angstrom {
			n = -n
		}
		fmt.Fprintf(b, "%5d%12.6f%12.6f%12.6f\n", n, G.Axes.At(a, 0), G.Axes.At(a, 1), G.Axes.At(a, 2))
	}
	for i := 0; i < G.NAtoms(); i++ {
		v := G.Atoms.Vec(i)
		var q float64
		if i < len(G.Charges) {
			q = G.Charges[i]
		}
		fmt.Fprintf(b, "%5d%12.6f%12.6f%12.6f%12.6f\n", G.AtomicNumbers[i], q, v[0], v[1], v[2])
	}
	if len(G.Orbitals) > 0 {
		fmt.Fprintf(b, "%5d%5d\n", 1, G.Orbitals[0])
	}
	//Lines of 6 values at most, and a new line after each row along the last axis.
	for i := 0; i < G.N[0]; i++ {
		for j := 0; j < G.N[1]; j++ {
			for k := 0; k < G.N[2]; k++ {
				fmt.Fprintf(b, " %12.5E", G.At(i, j, k))
				if k%6 == 5 || k == G.N[2]-1 {
					b.WriteString("\n")
				}
			}
		}
	}
	if err := b.Flush(); err != nil {
		return Error{WriteError + ": " + err.Error(), "", []string{"Encode"}, true}
	}
	return nil
}

// Error is the error type of this package. It satisfies orbitraj.Error.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("cube error: %s", err.message)
	}
	return fmt.Sprintf("cube file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the name of the file associated to the error.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file (always "cube") associated to the error
func (err Error) Format() string { return "cube" }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

var _ orbitraj.Error = Error{}

const (
	UnableToOpen   = "Unable to open file"
	UnableToCreate = "Unable to create file"
	ReadError      = "Error reading cube"
	WriteError     = "Error writing cube"
)

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}
