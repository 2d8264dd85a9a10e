package gfx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrShortTable is returned when a cached table holds fewer bytes than asked.
var ErrShortTable = errors.New("gfx: cached table too short")

// LoadTable reads exactly n bytes from dir/name.dat.
func LoadTable(dir, name string, n int) ([]byte, error) {
	f, err := os.Open(tablePath(dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrShortTable)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return buf, nil
}

// SaveTable writes data to dir/name.dat, creating dir if needed.
func SaveTable(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp := tablePath(dir, name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return os.Rename(tmp, tablePath(dir, name))
}

// CachedTable loads dir/name.dat or, when it is missing or unreadable, builds
// it and tries to store it for the next run. A failed store is returned as
// storeErr alongside a valid table; the caller decides whether to log it.
func CachedTable(dir, name string, n int, build func() []byte) (data []byte, storeErr error) {
	if dir != "" {
		if data, err := LoadTable(dir, name, n); err == nil {
			return data, nil
		}
	}
	data = build()
	if len(data) != n {
		panic(fmt.Sprintf("gfx: table %s built with %d bytes, want %d", name, len(data), n))
	}
	if dir == "" {
		return data, nil
	}
	return data, SaveTable(dir, name, data)
}

func tablePath(dir, name string) string {
	return filepath.Join(dir, name+".dat")
}
