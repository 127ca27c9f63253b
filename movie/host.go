/*
 * host.go, part of orbitraj.
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

package movie

import (
	"sync/atomic"

	"github.com/rmera/orbitraj"
)

// Host is the application that plays the frames of the trajectory.
type Host interface {
	//LoadFrame makes frame n (1-based) the current one.
	LoadFrame(n int, makeCurrent bool)
	//CurrentFrame returns the 1-based index of the current frame.
	CurrentFrame() int
	//Destroy ends the session.
	Destroy()
}

// attached wraps a Host so that a Synchronizer follows it.
type attached struct {
	Host
	sync       *Synchronizer
	loading    atomic.Bool
	destroying atomic.Bool
}

// Attach returns a Host that behaves like host, but also keeps S in sync with it: after
// the host loads a frame, the volume for that frame is shown, and before the host is
// destroyed, all volumes are closed. Calls that happen while the same event is
// being handled (e.g. the host loading a frame from its own LoadFrame) are dropped.
func (S *Synchronizer) Attach(host Host) Host {
	S.mu.Lock()
	S.host = host
	S.mu.Unlock()
	return &attached{Host: host, sync: S}
}

// LoadFrame calls the host's LoadFrame and then shows the volume for frame n.
func (A *attached) LoadFrame(n int, makeCurrent bool) {
	if !A.loading.CompareAndSwap(false, true) {
		orbitraj.Logf("orbitraj/movie.LoadFrame: nested load of frame %d ignored", n)
		return
	}
	defer A.loading.Store(false)
	A.Host.LoadFrame(n, makeCurrent)
	A.sync.Select(n)
}

// Destroy closes the volumes and then destroys the host.
func (A *attached) Destroy() {
	if !A.destroying.CompareAndSwap(false, true) {
		return
	}
	defer A.destroying.Store(false)
	if err := A.sync.Clear(); err != nil {
		orbitraj.Logf("orbitraj/movie.Destroy: %v", err)
	}
	A.sync.mu.Lock()
	A.sync.host = nil
	A.sync.mu.Unlock()
	A.Host.Destroy()
}
