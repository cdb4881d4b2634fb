package prm

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//The zstd Decoder doesn't implement io.ReadCloser (Close returns
//nothing), so we wrap it.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//a reader plus the chain of things that need closing under it.
type fileSource struct {
	io.Reader
	closers []io.Closer
}

func (f *fileSource) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// OpenFile opens a parameter or topology text file for reading,
// transparently decompressing it depending on the file extension: .gz
// (gzip), .zz (raw deflate) and .zst (zstandard) are supported; any other
// extension is read as plain text.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{message: err.Error(), filename: name, deco: []string{"OpenFile"}}
	}
	buf := bufio.NewReader(f)
	temp := strings.Split(name, ".")
	ext := strings.ToLower(temp[len(temp)-1])
	switch ext {
	case "gz":
		r, err := gzip.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, Error{message: err.Error(), filename: name, deco: []string{"OpenFile"}}
		}
		return &fileSource{Reader: r, closers: []io.Closer{r, f}}, nil
	case "zz":
		r := flate.NewReader(buf)
		return &fileSource{Reader: r, closers: []io.Closer{r, f}}, nil
	case "zst":
		d, err := zstd.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, Error{message: err.Error(), filename: name, deco: []string{"OpenFile"}}
		}
		ql := zstdql{d.Close, d}
		return &fileSource{Reader: d, closers: []io.Closer{ql, f}}, nil
	default:
		return &fileSource{Reader: buf, closers: []io.Closer{f}}, nil
	}
}
