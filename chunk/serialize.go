package chunk

import (
	"fmt"
	"math"

	"github.com/arloliu/tszchunk/compress"
	"github.com/arloliu/tszchunk/endian"
	"github.com/arloliu/tszchunk/errs"
	"github.com/arloliu/tszchunk/format"
	"github.com/arloliu/tszchunk/internal/hash"
	"github.com/arloliu/tszchunk/internal/pool"
	"github.com/arloliu/tszchunk/section"
)

// Marshal serializes the chunk as header, compressed payload, and an
// xxHash64 checksum of the stored payload bytes.
//
// Only the bins touched by the write cursor are serialized; the zero tail
// is reconstructed on load. The result is self-contained: Unmarshal needs
// nothing but these bytes.
func (c *GorillaChunk) Marshal() ([]byte, error) {
	hdr := section.NewChunkHeader(c.size)
	hdr.Flag.SetEncoding(format.TypeGorilla)
	hdr.Flag.SetCompression(c.cfg.compression)
	if c.cfg.engine == endian.GetBigEndianEngine() {
		hdr.Flag.WithBigEndian()
	}

	hdr.NumSamples = c.num
	hdr.BaseTimestamp = c.baseTS
	hdr.BaseValueBits = math.Float64bits(c.baseVal)
	hdr.Idx = c.idx
	hdr.PrevTimestamp = c.prevTS
	hdr.PrevTimestampDelta = c.prevDelta
	hdr.PrevValueBits = c.prevVal
	hdr.PrevLeading = c.prevLeading
	hdr.PrevTrailing = c.prevTrailing

	usedBins := int((c.idx + 63) / 64)

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)
	buf.Grow(usedBins * 8)

	payload := buf.Bytes()
	for _, bin := range c.bins[:usedBins] {
		payload = c.cfg.engine.AppendUint64(payload, bin)
	}

	return sealChunk(hdr, payload, c.cfg)
}

// Marshal serializes the raw chunk in the same envelope as a Gorilla
// chunk. The base fields and the prev timestamp and value bits are taken
// from the first and last stored pairs; the prev delta and the XOR window
// fields are left zero.
func (c *RawChunk) Marshal() ([]byte, error) {
	hdr := section.NewChunkHeader(c.size)
	hdr.Flag.SetEncoding(format.TypeRaw)
	hdr.Flag.SetCompression(c.cfg.compression)
	if c.cfg.engine == endian.GetBigEndianEngine() {
		hdr.Flag.WithBigEndian()
	}

	hdr.NumSamples = c.num
	hdr.Idx = uint64(len(c.data)) * 8

	if c.num > 0 {
		first, _ := c.At(0)
		hdr.BaseTimestamp = first.Ts
		hdr.BaseValueBits = math.Float64bits(first.Val)

		last, _ := c.At(c.num - 1)
		hdr.PrevTimestamp = last.Ts
		hdr.PrevValueBits = math.Float64bits(last.Val)
	}

	return sealChunk(hdr, c.data, c.cfg)
}

// sealChunk compresses the payload, fills in the payload length, and glues
// header, payload and checksum together.
func sealChunk(hdr *section.ChunkHeader, payload []byte, cfg Config) ([]byte, error) {
	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	stored, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress chunk payload: %w", err)
	}

	hdr.PayloadSize = uint64(len(stored))

	out := make([]byte, 0, section.HeaderSize+len(stored)+section.ChecksumSize)
	out = append(out, hdr.Bytes()...)
	out = append(out, stored...)
	out = cfg.engine.AppendUint64(out, hash.Checksum(stored))

	return out, nil
}

// Unmarshal reconstructs a chunk from data produced by Marshal. The
// concrete type is chosen by the header's encoding flag.
func Unmarshal(data []byte) (Chunk, error) {
	hdr, err := section.ParseChunkHeader(data)
	if err != nil {
		return nil, err
	}

	engine := hdr.Flag.GetEndianEngine()

	end := uint64(section.HeaderSize) + hdr.PayloadSize
	if uint64(len(data)) < end+section.ChecksumSize {
		return nil, errs.ErrInvalidPayloadSize
	}

	stored := data[section.HeaderSize:end]
	want := engine.Uint64(data[end : end+section.ChecksumSize])
	if hash.Checksum(stored) != want {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(hdr.Flag.Compression())
	if err != nil {
		return nil, err
	}

	// The decompressed payload size is fixed by the header: the bins the
	// cursor touched for a Gorilla chunk, the stored pairs for a raw one.
	// Sizing the decode buffer here also bounds allocation for a corrupt
	// header before any payload byte is inflated.
	var payloadLen uint64
	switch hdr.Flag.Encoding() {
	case format.TypeGorilla:
		payloadLen = (hdr.Idx + 63) / 64 * 8
	case format.TypeRaw:
		payloadLen = hdr.NumSamples * rawSampleSize
	default:
		return nil, errs.ErrInvalidHeaderFlags
	}
	if payloadLen > hdr.Size {
		return nil, errs.ErrInvalidPayloadSize
	}

	payload, err := codec.Decompress(stored, int(payloadLen))
	if err != nil {
		return nil, fmt.Errorf("decompress chunk payload: %w", err)
	}

	if hdr.Flag.Encoding() == format.TypeRaw {
		return unmarshalRaw(&hdr, payload)
	}

	return unmarshalGorilla(&hdr, payload, engine)
}

func chunkOptions(hdr *section.ChunkHeader) []Option {
	opts := []Option{WithCompression(hdr.Flag.Compression())}
	if hdr.Flag.IsBigEndian() {
		opts = append(opts, WithBigEndian())
	}

	return opts
}

func unmarshalGorilla(hdr *section.ChunkHeader, payload []byte, engine endian.EndianEngine) (*GorillaChunk, error) {
	c, err := NewGorilla(hdr.Size, chunkOptions(hdr)...)
	if err != nil {
		return nil, err
	}

	usedBins := (hdr.Idx + 63) / 64
	if usedBins > uint64(len(c.bins)) || uint64(len(payload)) < usedBins*8 {
		return nil, errs.ErrInvalidPayloadSize
	}

	for i := uint64(0); i < usedBins; i++ {
		c.bins[i] = engine.Uint64(payload[i*8:])
	}

	c.num = hdr.NumSamples
	c.idx = hdr.Idx
	c.baseTS = hdr.BaseTimestamp
	c.baseVal = math.Float64frombits(hdr.BaseValueBits)
	c.prevTS = hdr.PrevTimestamp
	c.prevDelta = hdr.PrevTimestampDelta
	c.prevVal = hdr.PrevValueBits
	c.prevLeading = hdr.PrevLeading
	c.prevTrailing = hdr.PrevTrailing

	return c, nil
}

// unmarshalRaw restores a raw chunk; the stored pairs are already in the
// flag's byte order, which chunkOptions propagates to cfg.engine.
func unmarshalRaw(hdr *section.ChunkHeader, payload []byte) (*RawChunk, error) {
	c, err := NewRaw(hdr.Size, chunkOptions(hdr)...)
	if err != nil {
		return nil, err
	}

	if hdr.NumSamples*rawSampleSize != uint64(len(payload)) || uint64(len(payload)) > c.size {
		return nil, errs.ErrInvalidPayloadSize
	}

	c.data = append(c.data, payload...)
	c.num = hdr.NumSamples

	return c, nil
}
