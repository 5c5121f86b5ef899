package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteFile serializes, validates and writes a recording to disk. A path
// ending in .gz gets gzip compression; compress forces it regardless of
// extension.
func WriteFile(r *Recorder, path string, compress bool) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer f.Close()

	if compress || strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("write compressed replay: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finish compressed replay: %w", err)
		}
		return nil
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write replay: %w", err)
	}
	return nil
}

// ReadFile loads a recording written by WriteFile, transparently
// decompressing .gz files, and validates it before decoding.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	var rd io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open compressed replay: %w", err)
		}
		defer zr.Close()
		rd = zr
	}

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &doc, nil
}
