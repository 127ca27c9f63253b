/*
 * errors_test.go, part of orbitraj.
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
	"strings"
	"testing"
)

func TestErrDecorate(Te *testing.T) {
	err := NewError(ErrValidation, "3 volumes for 4 frames", "", "Populate")
	ErrDecorate(err, "Controller.Load")
	deco := err.Decorate("")
	if len(deco) != 2 || deco[1] != "Controller.Load" {
		Te.Errorf("unexpected decoration %v", deco)
	}
	if !errors.Is(err, ErrValidation) || errors.Is(err, ErrConversion) {
		Te.Error("the error kind is not exposed correctly")
	}
	if !strings.Contains(err.Error(), "3 volumes for 4 frames") {
		Te.Errorf("message lost: %s", err.Error())
	}
	plain := errors.New("plain")
	if ErrDecorate(plain, "x") != plain {
		Te.Error("non-orbitraj errors should be returned unchanged")
	}
}

func TestBatchError(Te *testing.T) {
	B := &BatchError{Op: "convert"}
	if B.OrNil() != nil {
		Te.Error("an empty batch error should be nil")
	}
	B.Add("a.wfn", nil)
	B.Add("b.wfn", NewError(ErrConversion, "Multiwfn failed", "b.wfn", "Convert"))
	B.Add("c.wfn", errors.New("boom"))
	if B.Len() != 2 {
		Te.Fatalf("expected 2 failures, got %d", B.Len())
	}
	err := B.OrNil()
	if !errors.Is(err, ErrConversion) {
		Te.Error("the batch error should expose the errors of its elements")
	}
	if B.Failed("a.wfn") != nil || B.Failed("c.wfn") == nil {
		Te.Error("wrong per-path failures")
	}
	if p := B.Paths(); p[0] != "b.wfn" || p[1] != "c.wfn" {
		Te.Errorf("wrong order %v", p)
	}
}

func TestSetLogger(Te *testing.T) {
	original := Logf
	defer func() { Logf = original }()
	called := false
	SetLogger(func(string, ...interface{}) { called = true })
	Logf("test")
	if !called {
		Te.Error("custom logger was not called")
	}
	called = false
	SetLogger(nil)
	Logf("test")
	if called {
		Te.Error("nil should mute the logger")
	}
}
