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

//Package multiwfn turns wavefunction files (.wfn, .wfx, .fch, .molden, .gms and the
//numbered formats .31 to .40) into Gaussian cube files by driving Multiwfn.
//
//Multiwfn is freely available at http://sobereva.com/multiwfn and was published
//at J. Comput. Chem., 33, 580-592 (2012). It must be installed and either be in the
//$PATH or in the directory given by the Multiwfnpath environment variable.
//Please cite the Multiwfn reference if you use this package.
//
//Multiwfn always writes its results to files with fixed names in its working
//directory, so two conversions must not run at the same time in the same directory.
package multiwfn
