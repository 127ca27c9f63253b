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

/*Package cube reads and writes Gaussian cube files, the volumetric format written by
Gaussian's cubegen, Multiwfn, ORCA's orca_plot and many other programs.

A cube file has two comment lines, a line with the number of atoms and the origin of
the grid, three lines with the number of points and the voxel vector along each axis,
one line per atom and then the values, with the last index running fastest.
A negative number of atoms means the file contains molecular orbitals, and a line with
the orbital indexes follows the atoms. Only the first orbital is read in that case.

Files whose names end in .gz or .zst are decompressed (and, when writing, compressed)
transparently.

A Grid implements orbitraj.Field, with values obtained by trilinear interpolation.*/
package cube
