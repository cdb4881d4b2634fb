/*
Package prm reads CHARMM parameter (prm) files and resolves the resulting
force-field parameter records against topology elements.

The matching keys are ordered tuples of atom-type symbols. Lookups are
symmetric (a bond A-B is the same physical bond as B-A) and, for
dihedrals and impropers, fall back to progressively more wildcarded
candidate keys, where the symbol X matches any atom type.
*/
package prm
