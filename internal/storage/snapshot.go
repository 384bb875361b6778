package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// ErrCorruptSnapshot is returned when a snapshot cannot be decoded or its
// content does not match the recorded fingerprint.
var ErrCorruptSnapshot = errors.New("corrupt map snapshot")

const snapshotMagic = "MGS1"

type snapshotHeader struct {
	Width         uint32
	Height        uint32
	Flags         uint8
	Seed          int64
	Generator     int32
	StartDistance int32
	NumStarts     uint32
}

// SaveSnapshot writes m to map.lz4 atomically.
func (s *Storage) SaveSnapshot(m *world.Map) error {
	var raw bytes.Buffer
	encodeSnapshot(&raw, m)

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	if err := atomicWrite(s.Path(snapshotFile), buf.Bytes()); err != nil {
		return err
	}
	s.log.Debug("saved snapshot", "bytes", buf.Len(), "raw", raw.Len())
	return nil
}

// LoadSnapshot reads map.lz4 and verifies its fingerprint.
func (s *Storage) LoadSnapshot() (*world.Map, error) {
	f, err := os.Open(s.Path(snapshotFile))
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorruptSnapshot, err)
	}
	return decodeSnapshot(bytes.NewReader(data))
}

func encodeSnapshot(w *bytes.Buffer, m *world.Map) {
	put := func(v any) {
		// Writes into a bytes.Buffer only fail on unsupported types.
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}

	w.WriteString(snapshotMagic)
	var flags uint8
	if m.Topo.WrapX {
		flags |= 1
	}
	if m.Topo.WrapY {
		flags |= 2
	}
	put(snapshotHeader{
		Width:         uint32(m.Topo.Width),
		Height:        uint32(m.Topo.Height),
		Flags:         flags,
		Seed:          m.Seed,
		Generator:     int32(m.Generator),
		StartDistance: int32(m.StartDistance),
		NumStarts:     uint32(len(m.Starts)),
	})
	put(m.Terrain.Cells())
	put(m.Specials.Cells())
	put(toInt32(m.Continents.Cells()))
	for _, s := range [][]int{m.ContinentSizes, m.OceanSizes, m.LakeSurrounders, m.IslandSurrounders, m.Fallbacks} {
		put(uint32(len(s)))
		put(toInt32(s))
	}
	for _, st := range m.Starts {
		put([3]int32{int32(st.Pos.X), int32(st.Pos.Y), int32(st.Nation)})
	}
	putString(w, put, m.RunID)
	putString(w, put, m.Fingerprint())
}

func putString(w *bytes.Buffer, put func(any), s string) {
	put(uint32(len(s)))
	w.WriteString(s)
}

func decodeSnapshot(r *bytes.Reader) (*world.Map, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}

	var h snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorruptSnapshot, err)
	}
	if h.Width < grid.MinLinearSize || h.Width > grid.MaxLinearSize ||
		h.Height < grid.MinLinearSize || h.Height > grid.MaxLinearSize {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorruptSnapshot, h.Width, h.Height)
	}

	topo := grid.Topology{
		Width:  int(h.Width),
		Height: int(h.Height),
		WrapX:  h.Flags&1 != 0,
		WrapY:  h.Flags&2 != 0,
	}
	m := world.New(topo)
	m.Seed = h.Seed
	m.Generator = int(h.Generator)
	m.StartDistance = int(h.StartDistance)

	get := func(v any) error {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		return nil
	}

	if err := get(m.Terrain.Cells()); err != nil {
		return nil, err
	}
	if err := get(m.Specials.Cells()); err != nil {
		return nil, err
	}
	labels := make([]int32, topo.NumTiles())
	if err := get(labels); err != nil {
		return nil, err
	}
	copy(m.Continents.Cells(), fromInt32(labels))

	for _, dst := range []*[]int{&m.ContinentSizes, &m.OceanSizes, &m.LakeSurrounders, &m.IslandSurrounders, &m.Fallbacks} {
		var n uint32
		if err := get(&n); err != nil {
			return nil, err
		}
		if int(n) > r.Len()/4 {
			return nil, fmt.Errorf("%w: slice length %d", ErrCorruptSnapshot, n)
		}
		if n == 0 {
			continue
		}
		vals := make([]int32, n)
		if err := get(vals); err != nil {
			return nil, err
		}
		*dst = fromInt32(vals)
	}

	if int(h.NumStarts) > r.Len()/12 {
		return nil, fmt.Errorf("%w: %d starts", ErrCorruptSnapshot, h.NumStarts)
	}
	for range h.NumStarts {
		var v [3]int32
		if err := get(&v); err != nil {
			return nil, err
		}
		m.Starts = append(m.Starts, world.StartPos{
			Pos:    grid.Pos{X: int(v[0]), Y: int(v[1])},
			Nation: int(v[2]),
		})
	}

	runID, err := getString(r, get)
	if err != nil {
		return nil, err
	}
	m.RunID = runID
	fp, err := getString(r, get)
	if err != nil {
		return nil, err
	}
	if got := m.Fingerprint(); got != fp {
		return nil, fmt.Errorf("%w: fingerprint %s, recorded %s", ErrCorruptSnapshot, got, fp)
	}
	return m, nil
}

func getString(r *bytes.Reader, get func(any) error) (string, error) {
	var n uint32
	if err := get(&n); err != nil {
		return "", err
	}
	if int(n) > r.Len() {
		return "", fmt.Errorf("%w: string length %d", ErrCorruptSnapshot, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return string(b), nil
}

func toInt32(s []int) []int32 {
	out := make([]int32, len(s))
	for i, v := range s {
		out[i] = int32(v)
	}
	return out
}

func fromInt32(s []int32) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}
