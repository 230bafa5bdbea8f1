// Package localfile reads an address list from disk. It satisfies the same
// source contract as webfile.Fetcher so lists can be checked offline.
package localfile

import (
	"context"
	"os"
)

type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Name() string {
	return "file://" + r.path
}

func (r *Reader) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(r.path)
}
