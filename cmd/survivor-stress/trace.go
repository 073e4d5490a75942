package main

import (
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/plus3/nightfall/game"
	"github.com/vmihailenco/msgpack/v5"
)

// traceWriter appends msgpack-encoded snapshots to a zstd stream.
type traceWriter struct {
	dst    io.WriteCloser
	zw     *zstd.Encoder
	enc    *msgpack.Encoder
	frames int
}

func newTraceWriter(dst io.WriteCloser) (*traceWriter, error) {
	zw, err := zstd.NewWriter(dst)
	if err != nil {
		return nil, err
	}
	return &traceWriter{dst: dst, zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

func (t *traceWriter) Write(snap game.Snapshot) error {
	if err := t.enc.Encode(&snap); err != nil {
		return err
	}
	t.frames++
	return nil
}

func (t *traceWriter) Frames() int {
	return t.frames
}

// Close flushes the compressed stream and closes the destination.
func (t *traceWriter) Close() error {
	return errors.Join(t.zw.Close(), t.dst.Close())
}

// readTrace decodes every snapshot in a trace.
func readTrace(r io.Reader) ([]game.Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	dec := msgpack.NewDecoder(zr)
	var snaps []game.Snapshot
	for {
		var snap game.Snapshot
		if err := dec.Decode(&snap); err != nil {
			if errors.Is(err, io.EOF) {
				return snaps, nil
			}
			return snaps, err
		}
		snaps = append(snaps, snap)
	}
}
