// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"path/filepath"

	"github.com/pingcap/errors"
)

// ResultWriter appends one JSON line per record to the output file. The file
// is opened and closed per append, so no handle is held across iterations
// and a crash cannot corrupt previously written lines.
type ResultWriter struct {
	path string
}

func NewResultWriter(path string) *ResultWriter {
	return &ResultWriter{path: path}
}

// AppendLine writes line plus a trailing newline, creating parent directories
// on first use. Repeated invocations accumulate history.
func (w *ResultWriter) AppendLine(line []byte) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Annotate(err, "create output directory failed")
		}
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Annotate(err, "open output file failed")
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return errors.Annotate(err, "write record failed")
	}
	if err := f.Close(); err != nil {
		return errors.Annotate(err, "close output file failed")
	}
	return nil
}
