// Package persist implements spec.md §6's bit-exact heap persistence
// surface: the embedder hands the core "a byte buffer for load/save" and
// the core is responsible for round-tripping its own state through it
// without the embedder knowing anything about object tags or zone layout.
//
// Grounded on the teacher's internal/driver/dcache.go DiskCache: a
// schema-versioned payload struct, github.com/vmihailenco/msgpack/v5 for
// the wire encoding, and an atomic write-to-temp-then-rename so a crash
// mid-save never corrupts the prior file. The calculator's payload is the
// Globals+Temporaries arena bytes plus the directory tree and active
// settings, rather than the compiler's module-cache metadata, but the
// envelope shape (Schema uint16 first field, plain exported fields,
// msgpack.Encoder/Decoder straight onto a file handle) is unchanged.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"rplcalc/internal/heap"
	"rplcalc/internal/runtime"
	"rplcalc/internal/settings"
)

// schemaVersion is bumped whenever Payload's shape changes incompatibly.
// A file written by an older schema simply fails to load with a clear
// error rather than silently misinterpreting bytes (spec.md §6 never
// promises cross-version compatibility, only that the format round-trips
// within one running core).
const schemaVersion uint16 = 1

// dirSnapshot is one node of the serialized directory tree.
type dirSnapshot struct {
	Name     string
	Vars     map[string]uint32 // var name -> arena offset
	Children []dirSnapshot
}

// Payload is everything persist.Save writes and persist.Load restores.
type Payload struct {
	Schema     uint16
	Arena      []byte
	GlobalsEnd uint32
	TempEnd    uint32
	MaxBytes   uint32
	Stack      []uint32 // arena offsets, top-of-stack last
	Root       dirSnapshot
	Settings   settings.Settings
}

// snapshotDir walks d and its subdirectories into a dirSnapshot, recording
// each directory's own bindings separately from its children's (spec.md
// §4.6's directory tree has no cross-links to preserve beyond parentage,
// which Load rebuilds implicitly via Crdir).
func snapshotDir(d *runtime.Directory) dirSnapshot {
	s := dirSnapshot{Name: d.Name(), Vars: map[string]uint32{}}
	for _, name := range d.VarNames() {
		ref, ok := d.VarRef(name)
		if !ok {
			continue
		}
		s.Vars[name] = ref.Offset()
	}
	for _, name := range d.ChildNames() {
		child, ok := d.Child(name)
		if !ok {
			continue
		}
		s.Children = append(s.Children, snapshotDir(child))
	}
	return s
}

// restoreDir rebuilds s onto dst using only Directory's public API, so a
// restored tree is indistinguishable from one built live through
// Sto/Crdir (internal/eval never needs to know the difference).
func restoreDir(dst *runtime.Directory, s dirSnapshot) error {
	for name, off := range s.Vars {
		if err := dst.Sto(name, heap.RefAt(off)); err != nil {
			return fmt.Errorf("restoring %s: %w", name, err)
		}
	}
	for _, childSnap := range s.Children {
		child, err := dst.Crdir(childSnap.Name)
		if err != nil {
			return fmt.Errorf("restoring subdirectory %s: %w", childSnap.Name, err)
		}
		if err := restoreDir(child, childSnap); err != nil {
			return err
		}
	}
	return nil
}

// Build assembles a Payload from the live heap/context, ready for Save.
// Callers should Collect first so Temporaries holds only reachable
// garbage-free state; Build itself does not collect.
func Build(h *heap.Heap, ctx *runtime.Context, set settings.Settings) Payload {
	arena, globalsEnd, tempEnd := h.Snapshot()
	stackRefs := ctx.Stack.All()
	stack := make([]uint32, len(stackRefs))
	for i, r := range stackRefs {
		stack[i] = r.Offset()
	}
	return Payload{
		Schema:     schemaVersion,
		Arena:      arena,
		GlobalsEnd: globalsEnd,
		TempEnd:    tempEnd,
		Stack:      stack,
		Root:       snapshotDir(ctx.Root),
		Settings:   set,
	}
}

// Restore rebuilds a heap and context from a Payload produced by Build,
// with maxBytes as the restored heap's ceiling. Payload has a MaxBytes
// field, but Build leaves it zero and Restore ignores it: callers pick the
// ceiling when restoring, matching spec.md §4.1's per-session heap ceiling
// rather than a value baked into the saved file.
func Restore(p Payload, maxBytes uint32) (*heap.Heap, *runtime.Context, settings.Settings, error) {
	if p.Schema != schemaVersion {
		return nil, nil, settings.Settings{}, fmt.Errorf("persist: unsupported schema %d (want %d)", p.Schema, schemaVersion)
	}
	h := heap.RestoreHeap(p.Arena, p.GlobalsEnd, p.TempEnd, maxBytes)
	ctx := runtime.NewContext()
	h.SetRootSource(ctx)
	if err := restoreDir(ctx.Root, p.Root); err != nil {
		return nil, nil, settings.Settings{}, err
	}
	stack := make([]heap.Ref, len(p.Stack))
	for i, off := range p.Stack {
		stack[i] = heap.RefAt(off)
	}
	ctx.Stack.Restore(stack)
	return h, ctx, p.Settings, nil
}

// Save writes a Payload to path, encoding with msgpack and swapping it
// into place atomically via a temp file + rename (grounded on
// DiskCache.Put's same crash-safety idiom).
func Save(path string, p Payload) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "rplcalc-*.tmp")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Load reads and decodes a Payload previously written by Save. A missing
// file is reported through the ordinary os.ErrNotExist wrapping so
// callers can errors.Is check it the same way DiskCache.Get does.
func Load(path string) (Payload, error) {
	var p Payload
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, err
		}
		return p, err
	}
	defer f.Close()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return p, err
	}
	return p, nil
}
