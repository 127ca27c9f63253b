/*
 * player.go, part of orbitraj.
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
	"context"
	"time"

	"github.com/rmera/orbitraj"
)

// Player is a headless Host that plays the frames of an ensemble.
type Player struct {
	ensemble  orbitraj.Ensemble
	frame     int
	Destroyed bool
	//Called after each frame is loaded, can be nil.
	OnFrame func(n int)
}

// NewPlayer returns a Player at the first frame of ensemble.
func NewPlayer(ensemble orbitraj.Ensemble) *Player {
	return &Player{ensemble: ensemble, frame: 1}
}

// LoadFrame makes n the current frame, if it exists.
func (P *Player) LoadFrame(n int, makeCurrent bool) {
	if n < 1 || n > P.ensemble.Len() {
		return
	}
	if makeCurrent {
		P.frame = n
	}
	if P.OnFrame != nil {
		P.OnFrame(n)
	}
}

func (P *Player) CurrentFrame() int { return P.frame }

func (P *Player) Destroy() { P.Destroyed = true }

// Play loads the frames from first to last (both 1-based and inclusive) with the given
// stride through host, which is usually the Player attached to a Synchronizer, waiting
// delay between frames. It stops early if ctx is done.
func Play(ctx context.Context, host Host, first, last, stride int, delay time.Duration) error {
	if stride == 0 {
		stride = 1
	}
	var tick <-chan time.Time
	if delay > 0 {
		t := time.NewTicker(delay)
		defer t.Stop()
		tick = t.C
	}
	for n := first; (stride > 0 && n <= last) || (stride < 0 && n >= last); n += stride {
		if err := ctx.Err(); err != nil {
			return err
		}
		host.LoadFrame(n, true)
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
	return nil
}
