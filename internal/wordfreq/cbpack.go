package wordfreq

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// cbpackHeader is the first element of a wordfreq data file. Every following
// element is a bin of words sharing one frequency, in centibels, with bin i
// holding words at -i cB.
type cbpackHeader struct {
	Format  string `msgpack:"format"`
	Version int    `msgpack:"version"`
}

const (
	cbpackFormat  = "cB"
	cbpackVersion = 1
)

// decodeBins reads a cBpack stream and returns its bins, most frequent first.
func decodeBins(r io.Reader, gzipped bool) ([][]string, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("failed to decode cBpack: %w", err)
	}
	if n < 1 {
		return nil, fmt.Errorf("cBpack data is empty")
	}
	var header cbpackHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("failed to decode cBpack header: %w", err)
	}
	if header.Format != cbpackFormat || header.Version != cbpackVersion {
		return nil, fmt.Errorf("unsupported cBpack format %q version %d", header.Format, header.Version)
	}

	bins := make([][]string, 0, n-1)
	for i := 1; i < n; i++ {
		var bin []string
		if err := dec.Decode(&bin); err != nil {
			return nil, fmt.Errorf("failed to decode cBpack bin %d: %w", i-1, err)
		}
		bins = append(bins, bin)
	}
	return bins, nil
}
