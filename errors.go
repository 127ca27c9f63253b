/*
 * errors.go, part of orbitraj.
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

package orbitraj

import (
	"errors"
	"fmt"
	"strings"
)

// The kinds of errors returned by orbitraj. Errors returned by the library
// wrap one of these, so they can be checked with errors.Is.
var (
	//The number of volumes doesn't match the number of frames, or
	//some other input is malformed. Nothing is changed when this is returned.
	ErrValidation = errors.New("validation error")

	//A color argument that can't be interpreted. Nothing is changed.
	ErrUnsupportedColor = errors.New("unsupported color")

	//A mask kind other than the known ones.
	ErrUnsupportedMask = errors.New("unsupported mask")

	//A file could not be converted into a volume.
	ErrConversion = errors.New("conversion error")
)

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value.
}

// Err is the concrete error type of orbitraj.
type Err struct {
	kind     error
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

// NewError returns a new critical *Err of the given kind. caller is the first
// element of the decoration stack.
func NewError(kind error, message, filename, caller string) *Err {
	e := &Err{kind: kind, message: message, filename: filename, critical: true}
	if caller != "" {
		e.deco = []string{caller}
	}
	return e
}

func (err *Err) Error() string {
	var b strings.Builder
	b.WriteString("orbitraj: ")
	if err.kind != nil {
		b.WriteString(err.kind.Error())
		b.WriteString(": ")
	}
	b.WriteString(err.message)
	if err.filename != "" {
		fmt.Fprintf(&b, " (file %s)", err.filename)
	}
	return b.String()
}

// Decorate adds deco to the decoration stack and returns the resulting stack.
func (err *Err) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Unwrap returns the kind of the error.
func (err *Err) Unwrap() error { return err.kind }

func (err *Err) FileName() string { return err.filename }

func (err *Err) Critical() bool { return err.critical }

// ErrDecorate decorates err with caller if err implements Error,
// and returns it. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// BatchError collects the failures of a batch in which each element is
// processed independently.
type BatchError struct {
	Op     string
	paths  []string
	failed map[string]error
}

// Add records the failure for path. It does nothing if err is nil.
func (B *BatchError) Add(path string, err error) {
	if err == nil {
		return
	}
	if B.failed == nil {
		B.failed = make(map[string]error)
	}
	if _, ok := B.failed[path]; !ok {
		B.paths = append(B.paths, path)
	}
	B.failed[path] = err
}

// Len returns the number of failed elements.
func (B *BatchError) Len() int {
	if B == nil {
		return 0
	}
	return len(B.paths)
}

// Paths returns the failed paths, in the order they failed.
func (B *BatchError) Paths() []string {
	return append([]string(nil), B.paths...)
}

// Failed returns the error for path, or nil.
func (B *BatchError) Failed(path string) error {
	return B.failed[path]
}

// OrNil returns B as an error if it has any failure, nil otherwise.
func (B *BatchError) OrNil() error {
	if B.Len() == 0 {
		return nil
	}
	return B
}

func (B *BatchError) Error() string {
	lines := make([]string, 0, len(B.paths)+1)
	lines = append(lines, fmt.Sprintf("orbitraj: %s: %d element(s) failed", B.Op, len(B.paths)))
	for _, p := range B.paths {
		lines = append(lines, fmt.Sprintf("  %s: %s", p, B.failed[p].Error()))
	}
	return strings.Join(lines, "\n")
}

// Unwrap returns the errors of all the failed elements.
func (B *BatchError) Unwrap() []error {
	ret := make([]error, 0, len(B.paths))
	for _, p := range B.paths {
		ret = append(ret, B.failed[p])
	}
	return ret
}
