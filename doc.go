/*
 * doc.go, part of crimm.
 *
 * Copyright 2024 The crimm developers
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

/*
Package crimm provides the shared entities for working with CHARMM-style
force fields: residue topology definitions with their internal-coordinate
tables, and the bonded topology elements (bonds, angles, dihedrals and
impropers) to which force-field parameters are attached.

The package itself holds no file-format knowledge. CHARMM parameter files
are read, and their records resolved against topology elements, by the prm
subpackage. Residue topology (rtf) files are read by the rtf subpackage.
Potential-energy profiles for resolved parameters can be plotted with the
prmplot subpackage.

A typical session loads one or more parameter files, builds the topology
elements for a residue and attaches parameters to them:

	params, err := prm.New("par_all36_prot.prm")
	lib, err := rtf.Read("top_all36_prot.rtf")
	elems, err := lib.TopoElements("ALA")
	err = params.Apply(elems)

after which every element carries its parameter record and elems.Missing
lists the ones for which no record was found.
*/
package crimm
