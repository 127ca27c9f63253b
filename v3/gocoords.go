/*
 * gocoords.go, part of orbitraj.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Matrix is a set of vectors in 3D space. The underlying
// Dense has always 3 columns, one per cartesian component.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs == 0 {
		return &Matrix{new(mat.Dense)}
	}
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NewMatrix returns a Matrix built over data, which is not copied.
// len(data) must be a multiple of 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return &Matrix{new(mat.Dense)}, nil
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// NVecs returns the number of vectors (rows) in the matrix.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil || F.Dense.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// VecView returns a view of the ith vector. Changes in the view
// change the original matrix.
func (F *Matrix) VecView(i int) *Matrix {
	if i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// Vec returns a copy of the ith vector as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	for k := 0; k < 3; k++ {
		F.Set(i, k, v[k])
	}
}

// AppendVecs returns a new matrix with the vectors of F followed by vecs.
// F is not modified. F can be nil.
func (F *Matrix) AppendVecs(vecs ...[3]float64) *Matrix {
	n := F.NVecs()
	ret := Zeros(n + len(vecs))
	if n > 0 {
		ret.Slice(0, n, 0, 3).(*mat.Dense).Copy(F.Dense)
	}
	for i, v := range vecs {
		ret.SetVec(n+i, v)
	}
	return ret
}

// Norm returns the euclidean norm of a 3-element vector.
func Norm(v [3]float64) float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n <= appzero {
		return 0
	}
	return n
}

func (F *Matrix) String() string {
	if F.NVecs() == 0 {
		return "[]"
	}
	lines := make([]string, 0, F.NVecs())
	for i := 0; i < F.NVecs(); i++ {
		v := F.Vec(i)
		lines = append(lines, fmt.Sprintf("[%8.4f %8.4f %8.4f]", v[0], v[1], v[2]))
	}
	return strings.Join(lines, "\n")
}

// Error is the error type of this package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("orbitraj/v3: A Matrix should have 3 columns")
	ErrIndexOutOfRange = PanicMsg("orbitraj/v3: index out of range")
)
