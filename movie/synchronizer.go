/*
 * synchronizer.go, part of orbitraj.
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
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/colors"
)

// State is the state of a Synchronizer.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Converter turns files that can't be opened as volumes into files that can.
// *multiwfn.Handle implements it.
type Converter interface {
	//Supported returns true if path needs to be converted.
	Supported(path string) bool
	//Convert converts path and returns the name of the new file.
	Convert(ctx context.Context, path string) (string, error)
}

// Synchronizer owns one volume per frame of an ensemble, and keeps exactly one
// of them, the one for the current frame, shown. It is safe for concurrent use.
type Synchronizer struct {
	mu        sync.Mutex
	ensemble  orbitraj.Ensemble
	opener    orbitraj.Opener
	converter Converter
	cfg       *orbitraj.Config
	styler    *Styler
	volumes   []orbitraj.Volume
	cm        *orbitraj.ColorMap
	current   int
	host      Host
	session   uuid.UUID
}

// NewSynchronizer returns an empty Synchronizer for the frames of ensemble. Volumes are opened with
// opener. converter can be nil, in which case all files are opened as they are. A nil cfg
// means orbitraj.DefaultConfig().
func NewSynchronizer(ensemble orbitraj.Ensemble, opener orbitraj.Opener, converter Converter, cfg *orbitraj.Config) *Synchronizer {
	if cfg == nil {
		cfg = orbitraj.DefaultConfig()
	}
	return &Synchronizer{
		ensemble:  ensemble,
		opener:    opener,
		converter: converter,
		cfg:       cfg,
		styler:    NewStyler(cfg),
		current:   1,
	}
}

// State returns Empty or Populated.
func (S *Synchronizer) State() State {
	S.mu.Lock()
	defer S.mu.Unlock()
	return S.state()
}

func (S *Synchronizer) state() State {
	if len(S.volumes) == 0 {
		return Empty
	}
	return Populated
}

// Volumes returns a copy of the list of volumes, index-aligned with the frames.
func (S *Synchronizer) Volumes() []orbitraj.Volume {
	S.mu.Lock()
	defer S.mu.Unlock()
	return append([]orbitraj.Volume(nil), S.volumes...)
}

// ColorMap returns the color map shared by the volumes, or nil.
func (S *Synchronizer) ColorMap() *orbitraj.ColorMap {
	S.mu.Lock()
	defer S.mu.Unlock()
	return S.cm
}

// Current returns the 1-based index of the frame whose volume is shown.
func (S *Synchronizer) Current() int {
	S.mu.Lock()
	defer S.mu.Unlock()
	return S.current
}

// Session returns the id of the current set of volumes. It is the zero UUID
// when the Synchronizer is empty.
func (S *Synchronizer) Session() uuid.UUID {
	S.mu.Lock()
	defer S.mu.Unlock()
	return S.session
}

// resolve converts the paths that need it. All paths are processed, failures are
// collected in a *orbitraj.BatchError.
func (S *Synchronizer) resolve(ctx context.Context, paths []string) ([]string, error) {
	resolved := make([]string, len(paths))
	failures := &orbitraj.BatchError{Op: "convert"}
	for i, p := range paths {
		resolved[i] = p
		if S.converter == nil || !S.converter.Supported(p) {
			continue
		}
		orbitraj.Logf("orbitraj/movie.Populate: converting %s", p)
		out, err := S.converter.Convert(ctx, p)
		if err != nil {
			failures.Add(p, err)
			continue
		}
		resolved[i] = out
	}
	return resolved, failures.OrNil()
}

// Populate opens one volume per frame from paths and makes them the volumes of the
// Synchronizer, replacing the previous ones. An empty list does nothing.
//
// If the number of paths is not the number of frames, an error wrapping orbitraj.ErrValidation is
// returned before anything is opened or converted. Files that need conversion are converted
// first. If any conversion fails, all files are still attempted, and a *orbitraj.BatchError
// is returned without opening anything. If opening any volume fails, the volumes opened so far
// are closed and the previous set is kept.
//
// Volumes are opened hidden, with model ids starting at the configured base. Then they get
// the default isosurface levels, and are colored with a shared color map (configured
// palette, mask and load alpha), and the volume of the current frame is shown.
func (S *Synchronizer) Populate(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if len(paths) != S.ensemble.Len() {
		return orbitraj.NewError(orbitraj.ErrValidation, fmt.Sprintf("%d volumes given for the %d frames of %s, provide exactly one volume per frame", len(paths), S.ensemble.Len(), S.ensemble.Name()), "", "movie.Synchronizer.Populate")
	}
	pal, err := colors.ParsePalette(S.cfg.Palette)
	if err != nil {
		return orbitraj.ErrDecorate(err, "movie.Synchronizer.Populate")
	}
	resolved, err := S.resolve(ctx, paths)
	if err != nil {
		return err
	}
	volumes := make([]orbitraj.Volume, 0, len(resolved))
	abort := func(err error) error {
		closeAll(volumes)
		return orbitraj.ErrDecorate(err, "movie.Synchronizer.Populate")
	}
	for i, p := range resolved {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		v, err := S.opener.Open(p, S.cfg.ModelIDBase+i)
		if err != nil {
			return abort(fmt.Errorf("opening %s: %w", p, err))
		}
		v.SetShown(false)
		volumes = append(volumes, v)
	}
	S.styler.SetIsosurface(volumes)
	for _, v := range volumes {
		v.Show()
	}
	cm, err := colors.Unify(volumes, nil, pal, S.cfg.LoadAlpha, S.cfg.MaskKind)
	if err != nil {
		return abort(err)
	}
	S.mu.Lock()
	old := S.volumes
	S.volumes = volumes
	S.cm = cm
	S.session = uuid.New()
	current := S.current
	if S.host != nil {
		current = S.host.CurrentFrame()
	}
	S.selectFrame(current)
	session := S.session
	S.mu.Unlock()
	if err := closeAll(old); err != nil {
		orbitraj.Logf("orbitraj/movie.Populate: closing the previous volumes: %v", err)
	}
	orbitraj.Logf("orbitraj/movie.Populate: session %s: %d volumes for %s, colors in %v", session, len(volumes), S.ensemble.Name(), cm.Range())
	return nil
}

// Adopt makes volumes, already opened, the volumes of the Synchronizer, replacing the previous
// ones. Nothing is adopted if any element is nil, or if there is not exactly one volume per frame.
// The volumes keep their colors, and the volume of the current frame is shown.
func (S *Synchronizer) Adopt(volumes []orbitraj.Volume) error {
	var rejected []int
	for i, v := range volumes {
		if v == nil {
			rejected = append(rejected, i)
		}
	}
	if len(rejected) > 0 {
		return orbitraj.NewError(orbitraj.ErrValidation, fmt.Sprintf("volumes at indexes %v are nil", rejected), "", "movie.Synchronizer.Adopt")
	}
	if len(volumes) != S.ensemble.Len() {
		return orbitraj.NewError(orbitraj.ErrValidation, fmt.Sprintf("%d volumes given for %d frames", len(volumes), S.ensemble.Len()), "", "movie.Synchronizer.Adopt")
	}
	S.mu.Lock()
	old := S.volumes
	S.volumes = append([]orbitraj.Volume(nil), volumes...)
	S.cm = nil
	S.session = uuid.New()
	S.selectFrame(S.current)
	S.mu.Unlock()
	return closeAll(old)
}

// Select shows the volume for the 1-based frame n, and hides all others.
// Out of range values of n, or an empty Synchronizer, are ignored.
func (S *Synchronizer) Select(n int) {
	S.mu.Lock()
	defer S.mu.Unlock()
	S.selectFrame(n)
}

func (S *Synchronizer) selectFrame(n int) {
	if len(S.volumes) == 0 || n < 1 || n > len(S.volumes) || n > S.ensemble.Len() {
		return
	}
	for _, v := range S.volumes {
		v.SetShown(false)
	}
	S.volumes[n-1].SetShown(true)
	S.current = n
}

// Clear closes every volume and leaves the Synchronizer empty. Clearing an empty
// Synchronizer does nothing. All volumes are closed even if some fail, the errors
// are joined.
func (S *Synchronizer) Clear() error {
	S.mu.Lock()
	old := S.volumes
	S.volumes = nil
	S.cm = nil
	session := S.session
	S.session = uuid.UUID{}
	S.mu.Unlock()
	if len(old) == 0 {
		return nil
	}
	orbitraj.Logf("orbitraj/movie.Clear: session %s: closing %d volumes", session, len(old))
	return closeAll(old)
}

// Update runs f with the volumes and the shared color map while no other
// writer can change them. If f returns without error, the map it returns becomes the
// shared map, so f returns cm to keep it, and nil to drop it. Nothing is run on an
// empty Synchronizer.
func (S *Synchronizer) Update(f func(volumes []orbitraj.Volume, cm *orbitraj.ColorMap) (*orbitraj.ColorMap, error)) error {
	S.mu.Lock()
	defer S.mu.Unlock()
	if len(S.volumes) == 0 {
		return nil
	}
	cm, err := f(S.volumes, S.cm)
	if err != nil {
		return err
	}
	S.cm = cm
	return nil
}

func closeAll(volumes []orbitraj.Volume) error {
	var errs []error
	for _, v := range volumes {
		if err := v.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", v.Name(), err))
		}
	}
	return errors.Join(errs...)
}
