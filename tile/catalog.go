package tile

import (
	"errors"
	"sort"
)

// ErrShortDigits is returned by CheckDigits
var ErrShortDigits = errors.New("tile: digit table needs at least 16 entries")

// CharKey is the fingerprint of a cell's color pattern.
type CharKey string

// UniqueChars counts how many cells share each key.
type UniqueChars map[CharKey]int

// Total returns the number of cells counted, which is the sum of all counts.
func (u UniqueChars) Total() (n int) {
	for _, c := range u {
		n += c
	}
	return
}

// Merge adds the counts in o to u.
func (u UniqueChars) Merge(o UniqueChars) {
	for k, c := range o {
		u[k] += c
	}
}

// Entry is a single key and its count.
type Entry struct {
	Key   CharKey
	Count int
}

// Sorted returns the entries ordered by most frequent first, ties broken by
// key.
func (u UniqueChars) Sorted() []Entry {
	entries := make([]Entry, 0, len(u))
	for k, c := range u {
		entries = append(entries, Entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// ColorsUsed counts the wide pixels sampled per color index.
type ColorsUsed [numColors]int

// Total returns the number of wide pixels counted.
func (c ColorsUsed) Total() (n int) {
	for _, v := range c {
		n += v
	}
	return
}

// Add adds the counts in o to c.
func (c *ColorsUsed) Add(o ColorsUsed) {
	for i, v := range o {
		c[i] += v
	}
}

// Catalog fingerprints every cell in src using HexDigits.
func Catalog(src Source) (UniqueChars, ColorsUsed) {
	return CatalogDigits(src, HexDigits)
}

// CatalogDigits fingerprints every cell in src, mapping each color index
// through digits. It panics if digits fails CheckDigits.
func CatalogDigits(src Source, digits string) (UniqueChars, ColorsUsed) {
	return Count(Keys(src, digits)), Usage(src)
}

// Count returns how many times each key appears in keys.
func Count(keys []CharKey) UniqueChars {
	chars := make(UniqueChars)
	for _, k := range keys {
		chars[k]++
	}
	return chars
}

// Usage counts every wide pixel in src by color index.
func Usage(src Source) (used ColorsUsed) {
	for y := 0; y < tileY*tileHeight; y++ {
		for x := 0; x < tileX*tileWidth; x++ {
			used[src.ColorIndexAt(x, y)&0x0f]++
		}
	}
	return
}

// CheckDigits returns an error if digits is too short to map every color
// index.
func CheckDigits(digits string) error {
	if len(digits) < numColors {
		return ErrShortDigits
	}
	return nil
}

// Keys returns the fingerprint of every cell in src, left to right then top to
// bottom.
func Keys(src Source, digits string) []CharKey {
	keys := make([]CharKey, 0, numTiles)
	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			keys = append(keys, Key(src, tx, ty, digits))
		}
	}
	return keys
}

// Key returns the fingerprint of the cell at column tx and row ty.
func Key(src Source, tx, ty int, digits string) CharKey {
	var key [tilePixels]byte
	for y := 0; y < tileHeight; y++ {
		for x := 0; x < tileWidth; x++ {
			c := src.ColorIndexAt(tx*tileWidth+x, ty*tileHeight+y) & 0x0f
			key[y*tileWidth+x] = digits[c]
		}
	}
	return CharKey(key[:])
}
