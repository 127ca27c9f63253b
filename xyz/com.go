package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/orbitraj"
	v3 "github.com/rmera/orbitraj/v3"
)

// ComToXYZ reads the molecule specification of the Gaussian input in r. The
// returned trajectory has one frame, named name.
//
// Link 0 lines (starting with %) are skipped. The molecule specification
// starts after the route section, the title and the charge and multiplicity line,
// and ends at the first blank line. Only cartesian coordinates are supported.
func ComToXYZ(r io.Reader, name string) (*Trajectory, error) {
	s := bufio.NewScanner(r)
	fail := func(msg string) (*Trajectory, error) {
		return nil, Error{msg, name, []string{"ComToXYZ"}, true}
	}
	route := false
	for s.Scan() {
		l := strings.TrimSpace(s.Text())
		if strings.HasPrefix(l, "#") {
			route = true
			break
		}
	}
	if !route {
		return fail("No route section found")
	}
	//The route can span several lines. Then a blank line, the title, another
	//blank line and the charge and multiplicity.
	blanks := 0
	for blanks < 2 && s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			blanks++
		}
	}
	if blanks < 2 || !s.Scan() {
		return fail("Truncated input before the molecule specification")
	}
	comment := strings.TrimSpace(s.Text()) //charge and multiplicity
	var symbols []string
	var coords []float64
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			break
		}
		if len(fields) < 4 {
			return fail(fmt.Sprintf("Atom line %q is not in cartesian coordinates", s.Text()))
		}
		//Gaussian allows a freeze flag between the symbol and the coordinates.
		c := fields[len(fields)-3:]
		for _, v := range c {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fail(fmt.Sprintf("Atom line %q is not in cartesian coordinates", s.Text()))
			}
			coords = append(coords, f)
		}
		symbols = append(symbols, atomSymbol(fields[0]))
	}
	if err := s.Err(); err != nil {
		return fail(err.Error())
	}
	if len(symbols) == 0 {
		return fail("No atoms found")
	}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		return fail(err.Error())
	}
	T := NewTrajectory(name, symbols)
	T.AddFrame(m, comment)
	return T, nil
}

// atomSymbol removes the fragment and parameter decorations Gaussian allows in
// atom labels, as in C(Fragment=1) or C-CA.
func atomSymbol(label string) string {
	if i := strings.IndexAny(label, "(-"); i > 0 {
		return label[:i]
	}
	return label
}

// ComFileToXYZ converts the Gaussian input file path into path+".xyz" and returns
// the name of the new file.
func ComFileToXYZ(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", Error{UnableToOpen + ": " + err.Error(), path, []string{"os.Open", "ComFileToXYZ"}, true}
	}
	defer f.Close()
	T, err := ComToXYZ(f, path)
	if err != nil {
		return "", errDecorate(err, "ComFileToXYZ")
	}
	out := path + ".xyz"
	if err := Write(out, T); err != nil {
		return "", errDecorate(err, "ComFileToXYZ")
	}
	orbitraj.Logf("xyz.ComFileToXYZ: %d atoms written to %s", T.NAtoms(), out)
	return out, nil
}
