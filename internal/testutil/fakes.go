// Package testutil provides in-memory stand-ins for the host collaborators
// (volumes, pieces, fields, the opening service and ensembles), shared by the
// tests of the orbitraj packages.
package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rmera/orbitraj"
	v3 "github.com/rmera/orbitraj/v3"
)

// LinearField is the field Coef·xyz + Offset. If Box is not nil, points
// outside of it are undefined.
type LinearField struct {
	Coef   [3]float64
	Offset float64
	Box    *[2][3]float64
}

func (L LinearField) inside(xyz [3]float64) bool {
	if L.Box == nil {
		return true
	}
	for k := 0; k < 3; k++ {
		if xyz[k] < L.Box[0][k] || xyz[k] > L.Box[1][k] {
			return false
		}
	}
	return true
}

func (L LinearField) ValueAt(xyz [3]float64) (float64, bool) {
	if !L.inside(xyz) {
		return 0, false
	}
	return L.Coef[0]*xyz[0] + L.Coef[1]*xyz[1] + L.Coef[2]*xyz[2] + L.Offset, true
}

func (L LinearField) GradientAt(xyz [3]float64) ([3]float64, bool) {
	if !L.inside(xyz) {
		return [3]float64{}, false
	}
	return L.Coef, true
}

// Piece is an in-memory surface piece.
type Piece struct {
	Verts *v3.Matrix
	C     orbitraj.RGBA
	VC    []orbitraj.RGBA
}

// NewPiece returns a piece with the given vertices and color.
func NewPiece(c orbitraj.RGBA, verts ...[3]float64) *Piece {
	var m *v3.Matrix
	return &Piece{Verts: m.AppendVecs(verts...), C: c}
}

func (P *Piece) Vertices() *v3.Matrix              { return P.Verts }
func (P *Piece) Color() orbitraj.RGBA              { return P.C }
func (P *Piece) SetColor(c orbitraj.RGBA)          { P.C = c }
func (P *Piece) VertexColors() []orbitraj.RGBA     { return P.VC }
func (P *Piece) SetVertexColors(c []orbitraj.RGBA) { P.VC = c }

// Volume is an in-memory volume that records what is done to it.
type Volume struct {
	VName    string
	VPath    string
	ID       int
	VShown   bool
	Levels   []float64
	VPieces  []orbitraj.Piece
	VRegion  *orbitraj.Region
	VMask    orbitraj.Mask
	VColor   orbitraj.RGBA
	Field    orbitraj.Field
	Closed   int
	Shows    int
	Regions  []RegionCall
	CloseErr error
}

// RegionCall records a call to NewRegion.
type RegionCall struct {
	Region     orbitraj.Region
	AdjustStep bool
	Show       bool
}

// NewVolume returns a volume with the given field and pieces.
func NewVolume(name string, f orbitraj.Field, pieces ...orbitraj.Piece) *Volume {
	return &Volume{VName: name, VPath: name, Field: f, VPieces: pieces}
}

func (V *Volume) Name() string                       { return V.VName }
func (V *Volume) Path() string                       { return V.VPath }
func (V *Volume) ModelID() int                       { return V.ID }
func (V *Volume) Shown() bool                        { return V.VShown }
func (V *Volume) SetShown(s bool)                    { V.VShown = s }
func (V *Volume) SurfaceLevels() []float64           { return V.Levels }
func (V *Volume) SetSurfaceLevels(levels ...float64) { V.Levels = levels }
func (V *Volume) Pieces() []orbitraj.Piece           { return V.VPieces }
func (V *Volume) Region() *orbitraj.Region           { return V.VRegion }
func (V *Volume) Mask() orbitraj.Mask                { return V.VMask }
func (V *Volume) SetMask(m orbitraj.Mask)            { V.VMask = m }
func (V *Volume) Color() orbitraj.RGBA               { return V.VColor }
func (V *Volume) SetColor(c orbitraj.RGBA)           { V.VColor = c }
func (V *Volume) Data() orbitraj.Field               { return V.Field }
func (V *Volume) Show()                              { V.Shows++ }

func (V *Volume) NewRegion(r orbitraj.Region, adjustStep, show bool) {
	V.Regions = append(V.Regions, RegionCall{r, adjustStep, show})
	nr := r
	V.VRegion = &nr
}

func (V *Volume) Close() error {
	V.Closed++
	return V.CloseErr
}

// Opener is an in-memory opening service. Every opened volume is
// a *Volume with a LinearField and one piece.
type Opener struct {
	Opened  []*Volume
	FailOn  string
	Counter int
}

// ErrOpen is returned by Opener for the path in FailOn.
var ErrOpen = errors.New("testutil: can't open volume")

func (O *Opener) Open(path string, modelID int) (orbitraj.Volume, error) {
	if path == O.FailOn {
		return nil, fmt.Errorf("%w: %s", ErrOpen, path)
	}
	O.Counter++
	x := float64(O.Counter)
	p := NewPiece(orbitraj.RGBA{0.7, 0.7, 0.7, 1}, [3]float64{0, 0, 0}, [3]float64{x, 0, 0}, [3]float64{0, x, 0})
	V := NewVolume(path, LinearField{Coef: [3]float64{1, 0, 0}}, p)
	V.ID = modelID
	V.VShown = true
	V.VRegion = &orbitraj.Region{Max: [3]int{10, 10, 10}, Step: [3]int{1, 1, 1}}
	O.Opened = append(O.Opened, V)
	return V, nil
}

// Ensemble is an ensemble with N frames.
type Ensemble struct {
	N     int
	Label string
}

func (E Ensemble) Len() int     { return E.N }
func (E Ensemble) Name() string { return E.Label }

// NoError fails the test if err is not nil.
func NoError(Te *testing.T, err error) {
	Te.Helper()
	if err != nil {
		Te.Fatalf("unexpected error: %v", err)
	}
}
