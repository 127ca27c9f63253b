/*Package xyz reads and writes multi-frame XYZ trajectories, which orbitraj uses as the
ensembles whose frames volumes are synchronized to, and converts Gaussian input files
into XYZ files.*/
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/orbitraj"
	v3 "github.com/rmera/orbitraj/v3"
)

// Trajectory is a set of frames of the same atoms. It implements orbitraj.Ensemble.
type Trajectory struct {
	name     string
	Symbols  []string
	Frames   []*v3.Matrix
	Comments []string
}

// NewTrajectory returns an empty trajectory for the atoms with the given symbols.
func NewTrajectory(name string, symbols []string) *Trajectory {
	return &Trajectory{name: name, Symbols: symbols}
}

// Len returns the number of frames.
func (T *Trajectory) Len() int { return len(T.Frames) }

// Name returns the name of the trajectory, usually the file it was read from.
func (T *Trajectory) Name() string { return T.name }

// NAtoms returns the number of atoms per frame.
func (T *Trajectory) NAtoms() int { return len(T.Symbols) }

// AddFrame appends a frame with the given comment. The frame must have one
// vector per atom.
func (T *Trajectory) AddFrame(coords *v3.Matrix, comment string) error {
	if coords.NVecs() != T.NAtoms() {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", coords.NVecs(), T.NAtoms()), T.name, []string{"AddFrame"}, true}
	}
	T.Frames = append(T.Frames, coords)
	T.Comments = append(T.Comments, comment)
	return nil
}

var _ orbitraj.Ensemble = (*Trajectory)(nil)

// Read reads the XYZ file name, which can have any number of frames. Files
// whose names end in .gz are decompressed.
func Read(name string) (*Trajectory, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"os.Open", "Read"}, true}
	}
	defer f.Close()
	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"gzip.NewReader", "Read"}, true}
		}
		defer gz.Close()
		r = gz
	}
	T, err := Decode(r, name)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return T, nil
}

// Decode reads all the frames in r. All frames must have the same atoms.
func Decode(r io.Reader, name string) (*Trajectory, error) {
	s := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		ok := s.Scan()
		if ok {
			line++
		}
		return s.Text(), ok
	}
	fail := func(format string, a ...interface{}) (*Trajectory, error) {
		return nil, Error{fmt.Sprintf("line %d: ", line) + fmt.Sprintf(format, a...), name, []string{"Decode"}, true}
	}
	var T *Trajectory
	for {
		head, ok := next()
		if !ok {
			break
		}
		if strings.TrimSpace(head) == "" {
			continue //trailing blank lines
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(head))
		if err != nil || natoms < 0 {
			return fail("invalid number of atoms %q", head)
		}
		comment, ok := next()
		if !ok {
			return fail("frame %d is truncated", T.frames())
		}
		symbols := make([]string, natoms)
		coords := v3.Zeros(natoms)
		for i := 0; i < natoms; i++ {
			l, ok := next()
			if !ok {
				return fail("frame %d is truncated", T.frames())
			}
			fields := strings.Fields(l)
			if len(fields) < 4 {
				return fail("ill formed atom line %q", l)
			}
			symbols[i] = fields[0]
			var v [3]float64
			for k := range v {
				if v[k], err = strconv.ParseFloat(fields[k+1], 64); err != nil {
					return fail("ill formed atom line %q", l)
				}
			}
			coords.SetVec(i, v)
		}
		if T == nil {
			T = NewTrajectory(name, symbols)
		} else if !sameAtoms(T.Symbols, symbols) {
			return fail("frame %d doesn't have the same atoms as the first one", T.frames())
		}
		T.AddFrame(coords, comment)
	}
	if err := s.Err(); err != nil {
		return fail("%s", err.Error())
	}
	if T == nil {
		return fail("no frames")
	}
	return T, nil
}

func (T *Trajectory) frames() int {
	if T == nil {
		return 0
	}
	return len(T.Frames)
}

func sameAtoms(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Encode writes every frame of T to w.
func Encode(w io.Writer, T *Trajectory) error {
	b := bufio.NewWriter(w)
	for f, coords := range T.Frames {
		var comment string
		if f < len(T.Comments) {
			comment = T.Comments[f]
		}
		fmt.Fprintf(b, "%-4d\n%s\n", T.NAtoms(), comment)
		for i, s := range T.Symbols {
			c := coords.Vec(i)
			fmt.Fprintf(b, "%-2s  %12.6f%12.6f%12.6f\n", s, c[0], c[1], c[2])
		}
	}
	if err := b.Flush(); err != nil {
		return Error{"Error writing frames: " + err.Error(), T.name, []string{"Encode"}, true}
	}
	return nil
}

// Write writes T to the file name, which is created or overwritten.
func Write(name string, T *Trajectory) error {
	out, err := os.Create(name)
	if err != nil {
		return Error{UnableToCreate + ": " + err.Error(), name, []string{"os.Create", "Write"}, true}
	}
	defer out.Close()
	if err := Encode(out, T); err != nil {
		return errDecorate(err, "Write")
	}
	return out.Close()
}

// Error is the error type of this package. It satisfies orbitraj.Error.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("xyz file %s error: %s", err.filename, err.message)
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

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen   = "Unable to open file"
	UnableToCreate = "Unable to create file"
)

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}
