//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package reader

import "os"

// MMapSource falls back to a plain Buffer-backed file read on platforms
// without the mmap syscalls wired up (spec.md's WindowReader is only
// specified by interface; this is one concrete, non-core backend).
type MMapSource struct {
	*Buffer
	f *os.File
}

// OpenMMap opens the named file and windows it through a regular Buffer.
func OpenMMap(name string) (*MMapSource, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MMapSource{Buffer: NewBuffer(f, st.Size(), 1<<20, NewMRUCache(4)), f: f}, nil
}

func (m *MMapSource) Close() error { return m.f.Close() }
