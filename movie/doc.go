/*
 * doc.go, part of orbitraj.
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

/*Package movie keeps one volume per frame of a trajectory and shows only the
volume of the current frame, as frames are played by a host (a molecular viewer, or
the headless Player).

A Synchronizer owns the volumes. It is populated from one file per frame, converting
wavefunction files into cubes first, and colors all volumes with one shared color map.
Attach wraps the host, so that loading a frame also shows its volume, and closing the
host closes the volumes.

A Styler changes the isosurface levels, opacity and smoothing of a set of volumes, and
a Controller puts both together, as the configuration dialog of a viewer would.

	sync := movie.NewSynchronizer(traj, volume.NewOpener(cfg.RGBA), multiwfn.NewHandle(), cfg)
	host = sync.Attach(host)
	if err := sync.Populate(ctx, paths); err != nil {
		...
	}
*/
package movie
