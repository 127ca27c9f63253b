package xyz

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const water = `3
frame 1
O    0.000000    0.000000    0.000000
H    0.757000    0.586000    0.000000
H   -0.757000    0.586000    0.000000
3
frame 2
O    0.000000    0.000000    0.100000
H    0.757000    0.586000    0.100000
H   -0.757000    0.586000    0.100000

`

func TestDecode(Te *testing.T) {
	T, err := Decode(strings.NewReader(water), "water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 2 || T.NAtoms() != 3 || T.Name() != "water.xyz" {
		Te.Fatalf("unexpected trajectory: %d frames, %d atoms", T.Len(), T.NAtoms())
	}
	if !cmp.Equal(T.Symbols, []string{"O", "H", "H"}) || !cmp.Equal(T.Comments, []string{"frame 1", "frame 2"}) {
		Te.Errorf("symbols %v comments %v", T.Symbols, T.Comments)
	}
	if v := T.Frames[1].Vec(2); v != [3]float64{-0.757, 0.586, 0.1} {
		Te.Errorf("last atom of the second frame: %v", v)
	}
}

func TestDecodeErrors(Te *testing.T) {
	for name, in := range map[string]string{
		"empty":     "",
		"count":     "three\n\n",
		"truncated": "3\nc\nO 0 0 0\n",
		"coords":    "1\nc\nO 0 x 0\n",
		"atoms":     "1\nc\nO 0 0 0\n1\nc\nN 0 0 0\n",
	} {
		if _, err := Decode(strings.NewReader(in), name); err == nil {
			Te.Errorf("%s: expected an error", name)
		}
	}
}

func TestWriteRead(Te *testing.T) {
	T, err := Decode(strings.NewReader(water), "water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	path := filepath.Join(Te.TempDir(), "out.xyz")
	if err := Write(path, T); err != nil {
		Te.Fatal(err)
	}
	R, err := Read(path)
	if err != nil {
		Te.Fatal(err)
	}
	if R.Len() != T.Len() || R.Frames[1].Vec(1) != T.Frames[1].Vec(1) {
		Te.Errorf("frames changed on the way: %v", R.Frames[1])
	}
	var buf bytes.Buffer
	if err := Encode(&buf, R); err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "3   \nframe 1\nO ") {
		Te.Errorf("unexpected output %q", buf.String()[:20])
	}
}

const gaussianInput = `%chk=water.chk
%mem=1GB
# b3lyp/6-31g(d)
 opt freq

water, for testing

0 1
O(Fragment=1)   0.000000    0.000000    0.000000
H              0.757000    0.586000    0.000000
H   0          -0.757000    0.586000    0.000000

--Link1--
`

func TestComToXYZ(Te *testing.T) {
	T, err := ComToXYZ(strings.NewReader(gaussianInput), "water.com")
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 1 || !cmp.Equal(T.Symbols, []string{"O", "H", "H"}) {
		Te.Fatalf("unexpected molecule %v", T.Symbols)
	}
	if T.Comments[0] != "0 1" {
		Te.Errorf("comment %q", T.Comments[0])
	}
	if v := T.Frames[0].Vec(2); v != [3]float64{-0.757, 0.586, 0} {
		Te.Errorf("frozen atom read as %v", v)
	}
	if _, err := ComToXYZ(strings.NewReader("%chk=a\n"), "bad.com"); err == nil {
		Te.Error("expected an error for an input without route")
	}
	if _, err := ComToXYZ(strings.NewReader("# hf\n\ntitle\n\n0 1\nO 1 1.0\n\n"), "zmat.com"); err == nil {
		Te.Error("expected an error for a z-matrix")
	}
}

func TestComFileToXYZ(Te *testing.T) {
	dir := Te.TempDir()
	in := filepath.Join(dir, "water.com")
	if err := writeFile(in, gaussianInput); err != nil {
		Te.Fatal(err)
	}
	out, err := ComFileToXYZ(in)
	if err != nil {
		Te.Fatal(err)
	}
	if out != in+".xyz" {
		Te.Errorf("output written to %s", out)
	}
	T, err := Read(out)
	if err != nil {
		Te.Fatal(err)
	}
	if T.NAtoms() != 3 {
		Te.Errorf("%d atoms in the converted file", T.NAtoms())
	}
}

func writeFile(name, content string) error {
	return os.WriteFile(name, []byte(content), 0o644)
}
