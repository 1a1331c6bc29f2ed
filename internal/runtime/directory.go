package runtime

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/rterr"
)

// Directory is one node of the named-variable tree (spec.md §4.6).
// `Sto`/`Rcl`/`Purge` operate on the current directory; lookups walk
// parent directories for read but not for write.
//
// Grounded on the teacher's internal/symbols.Scope: a parent-pointer
// tree node holding a name->entry map plus a map of named children,
// the same shape a lexical scope chain uses for name resolution - here
// repurposed from compile-time symbol scoping to the calculator's
// runtime variable directories.
type Directory struct {
	name     string
	parent   *Directory
	vars     map[string]heap.Ref
	children map[string]*Directory
}

// NewRoot creates the top-level directory (HOME), with no parent.
func NewRoot() *Directory {
	return &Directory{name: "HOME", vars: map[string]heap.Ref{}, children: map[string]*Directory{}}
}

// Name returns this directory's own name ("HOME" for the root).
func (d *Directory) Name() string { return d.name }

// Sto stores ref under name in d, the current directory. Overwrites any
// existing variable of the same name; fails with name_exists if a
// subdirectory already uses that name.
func (d *Directory) Sto(name string, ref heap.Ref) error {
	if _, isDir := d.children[name]; isDir {
		return rterr.New(rterr.NameExists, "a subdirectory named "+name+" already exists")
	}
	d.vars[name] = ref
	return nil
}

// Rcl looks up name, walking from d up through parent directories (read
// walks parents; write, via Sto/Purge, does not). Fails with
// undefined_name if no ancestor defines it.
func (d *Directory) Rcl(name string) (heap.Ref, error) {
	for cur := d; cur != nil; cur = cur.parent {
		if ref, ok := cur.vars[name]; ok {
			return ref, nil
		}
	}
	return heap.Null, rterr.New(rterr.UndefinedName, "undefined name "+name)
}

// Purge removes name from d only (no parent walk - purging is a write).
func (d *Directory) Purge(name string) error {
	if _, ok := d.vars[name]; !ok {
		return rterr.New(rterr.UndefinedName, "undefined name "+name)
	}
	delete(d.vars, name)
	return nil
}

// Crdir creates and returns a new subdirectory of d named name. Fails
// with name_exists if name already names a variable or subdirectory here.
func (d *Directory) Crdir(name string) (*Directory, error) {
	if _, ok := d.vars[name]; ok {
		return nil, rterr.New(rterr.NameExists, "a variable named "+name+" already exists")
	}
	if _, ok := d.children[name]; ok {
		return nil, rterr.New(rterr.NameExists, "a subdirectory named "+name+" already exists")
	}
	sub := &Directory{name: name, parent: d, vars: map[string]heap.Ref{}, children: map[string]*Directory{}}
	d.children[name] = sub
	return sub, nil
}

// Chdir descends into the named subdirectory of d.
func (d *Directory) Chdir(name string) (*Directory, error) {
	sub, ok := d.children[name]
	if !ok {
		return nil, rterr.New(rterr.NoDirectory, "no such directory "+name)
	}
	return sub, nil
}

// UpDir returns d's parent. Fails with no_directory at the root.
func (d *Directory) UpDir() (*Directory, error) {
	if d.parent == nil {
		return nil, rterr.New(rterr.NoDirectory, "already at the root directory")
	}
	return d.parent, nil
}

// VarNames returns the names of every variable stored directly in d (the
// Vars command; no parent walk, matching Sto/Purge's write-local scope).
func (d *Directory) VarNames() []string {
	names := make([]string, 0, len(d.vars))
	for name := range d.vars {
		names = append(names, name)
	}
	return names
}

// VarRef returns the ref stored under name directly in d, with no parent
// walk (internal/persist's tree-walk serializer, which records each
// directory's own bindings separately from its ancestors').
func (d *Directory) VarRef(name string) (heap.Ref, bool) {
	ref, ok := d.vars[name]
	return ref, ok
}

// Child returns the named subdirectory of d directly, with no parent
// walk (internal/persist's tree-walk serializer).
func (d *Directory) Child(name string) (*Directory, bool) {
	c, ok := d.children[name]
	return c, ok
}

// ChildNames returns the names of every subdirectory of d directly
// (internal/persist's tree-walk serializer).
func (d *Directory) ChildNames() []string {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	return names
}

// Path returns the chain of directory names from the root to d.
func (d *Directory) Path() []string {
	var names []string
	for cur := d; cur != nil; cur = cur.parent {
		names = append([]string{cur.name}, names...)
	}
	return names
}
