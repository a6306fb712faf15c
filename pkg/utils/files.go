package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive contains no regular files.
var ErrEmptyArchive = errors.New("archive contains no files")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first regular file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filepath.Ext(filename), data)
}

// Decompress decodes data according to the given file extension. Unknown
// extensions (including .gb, .gbc and .bin) are returned as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("zip: %w", err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			return readArchived(f.Open)
		}
		return nil, ErrEmptyArchive
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("7z: %w", err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			return readArchived(f.Open)
		}
		return nil, ErrEmptyArchive
	default:
		return data, nil
	}
}

func readArchived(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
