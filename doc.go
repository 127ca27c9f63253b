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

/*Package orbitraj is the main package of the orbitraj library. It associates one volumetric
dataset (an electron density, an orbital, the electron localization function or any other
scalar field) with each frame of a trajectory, keeps exactly one of those volumes visible
in sync with the frame being shown, and colors all of them with a single, data-driven color map.

This package contains the types shared by the rest of the library: the interfaces for the
collaborators provided by the host application (volumes, the volume-opening service and the
trajectory or ensemble being played), the value ranges and color maps used to color the
surfaces, the library's errors and its configuration.

	**orbitraj packages**

    multiwfn: Converts wavefunction files (.wfn, .wfx, .fch, .molden...) into Gaussian cube
	files by driving Multiwfn (http://sobereva.com/multiwfn, J. Comput. Chem., 33, 580-592 (2012)),
	which must be obtained independently.

    colors: Palettes, mask strategies (gradient and volume coloring) and the unification of
	the value ranges of many volumes into one shared color map.

    movie: Synchronizes the visible volume with the current frame of a trajectory, and styles
	the volumes' surfaces (isosurface levels, opacity, smoothing).

    cube: Reads and writes Gaussian cube files, plain or compressed.

    volume: A headless implementation of the volume-opening service, with isosurfaces
	extracted by marching tetrahedra.

    xyz: Multi-frame XYZ trajectories, and conversion of Gaussian input files to XYZ.

    v3, histo: Coordinate matrices and histograms used by the rest of the library.

Everything runs on the caller's goroutine. The only blocking operation is the conversion
with Multiwfn, which can be cancelled through its context.
*/
package orbitraj
