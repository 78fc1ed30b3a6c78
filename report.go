package koala

import (
	"io/ioutil"

	"github.com/bodgit/koala/image"
	"github.com/bodgit/koala/tile"
)

// Report is the result of analysing a single Koala file.
type Report struct {
	File        string
	FrameBuffer *image.FrameBuffer
	UniqueChars tile.UniqueChars
	ColorsUsed  tile.ColorsUsed
}

// TopChars returns at most n of the most frequently used character cells. If
// n is less than one all of them are returned.
func (r *Report) TopChars(n int) []tile.Entry {
	entries := r.UniqueChars.Sorted()
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Replaced in tests to simulate I/O errors
var readFile = ioutil.ReadFile

func (k *Koala) load(file string) (*image.FrameBuffer, error) {
	b, err := readFile(file)
	if err != nil {
		return nil, err
	}

	var raw image.Koala
	if err := raw.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return raw.FrameBuffer(), nil
}

// Analyze decodes file and catalogs its character cells.
func (k *Koala) Analyze(file string) (*Report, error) {
	fb, err := k.load(file)
	if err != nil {
		return nil, err
	}

	keys := tile.Keys(fb, k.digits)
	for _, key := range keys {
		k.logger.Printf("Adding key: %s\n", key)
	}

	return &Report{
		File:        file,
		FrameBuffer: fb,
		UniqueChars: tile.Count(keys),
		ColorsUsed:  tile.Usage(fb),
	}, nil
}

// LogReport writes a summary of r to the logger.
func (k *Koala) LogReport(r *Report) {
	k.logger.Printf("Total unique chars: %d\n", len(r.UniqueChars))
	for i, n := range r.ColorsUsed {
		k.logger.Printf("Color: %d = %d\n", i, n)
	}
}
