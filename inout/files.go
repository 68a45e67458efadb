/*
 * files.go, part of fepele.
 *
 *
 * Copyright 2024 The fepele authors.
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
 *
 */

package inout

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt is appended to the name of compressed files.
const CompressedExt = ".zst"

// ClearDirectory removes dir with all its contents, if it exists, and
// creates it again, empty.
func ClearDirectory(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return Error{ErrCantClear + ": " + err.Error(), dir, []string{"os.RemoveAll", "ClearDirectory"}, true}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Error{ErrCantClear + ": " + err.Error(), dir, []string{"os.MkdirAll", "ClearDirectory"}, true}
	}
	return nil
}

// DeleteAllFilesWithExtension removes the regular files in dir (not in its
// subdirectories) whose names end in "."+ext. It returns the number of
// files removed.
func DeleteAllFilesWithExtension(dir, ext string) (int, error) {
	ext = "." + strings.TrimPrefix(ext, ".")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, Error{ErrCantRead + ": " + err.Error(), dir, []string{"os.ReadDir", "DeleteAllFilesWithExtension"}, true}
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		name := filepath.Join(dir, e.Name())
		if err := os.Remove(name); err != nil {
			return n, Error{ErrCantRemove + ": " + err.Error(), name, []string{"os.Remove", "DeleteAllFilesWithExtension"}, true}
		}
		n++
	}
	return n, nil
}

// writeFile wraps the file in a zstd encoder when compress is true.
type writeFile struct {
	f *os.File
	h io.WriteCloser
}

func (w *writeFile) Write(b []byte) (int, error) { return w.h.Write(b) }

func (w *writeFile) Close() error {
	err := w.h.Close()
	if err2 := w.f.Close(); err == nil {
		err = err2
	}
	return err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter creates the file name and returns a writer to it. If compress is
// true, the data is zstd-compressed and CompressedExt is added to the
// name, if not there already. It returns the final name used.
func NewWriter(name string, compress bool) (io.WriteCloser, string, error) {
	if compress && !strings.HasSuffix(name, CompressedExt) {
		name += CompressedExt
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, name, Error{ErrCantWrite + ": " + err.Error(), name, []string{"os.Create", "NewWriter"}, true}
	}
	if !compress {
		return &writeFile{f: f, h: nopWriteCloser{f}}, name, nil
	}
	h, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return nil, name, Error{ErrCantWrite + ": " + err.Error(), name, []string{"zstd.NewWriter", "NewWriter"}, true}
	}
	return &writeFile{f: f, h: h}, name, nil
}

// *zstd.Decoder doesn't implement io.ReadCloser
type zstdql struct {
	f *os.File
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// NewReader opens the file name for reading. Files ending in CompressedExt
// are decompressed on the fly.
func NewReader(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{ErrCantRead + ": " + err.Error(), name, []string{"os.Open", "NewReader"}, true}
	}
	if !strings.HasSuffix(name, CompressedExt) {
		return f, nil
	}
	d, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, Error{ErrCantRead + ": " + err.Error(), name, []string{"zstd.NewReader", "NewReader"}, true}
	}
	return zstdql{f: f, Decoder: d}, nil
}

// ReadMaybeCompressed returns the contents of the file name, decompressing
// them if the name ends in CompressedExt.
func ReadMaybeCompressed(name string) ([]byte, error) {
	r, err := NewReader(name)
	if err != nil {
		return nil, errDecorate(err, "ReadMaybeCompressed")
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, Error{ErrCantRead + ": " + err.Error(), name, []string{"io.ReadAll", "ReadMaybeCompressed"}, true}
	}
	return b, nil
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
