package accumulators

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Codec selects the compression applied to serialized Accumulators. The codec
// is recorded in the first byte of the serialized data, so FromBytes accepts
// data written with any Codec.
type Codec byte

const (
	// LZ4 compresses with the lz4 frame format
	LZ4 Codec = iota
	// Snappy compresses with the snappy block format
	Snappy
	// Zstd compresses with zstandard
	Zstd
	// NoCompression stores data as-is
	NoCompression
)

var codecNames = map[Codec]string{
	LZ4:           "lz4",
	Snappy:        "snappy",
	Zstd:          "zstd",
	NoCompression: "none",
}

// String returns the name of this Codec
func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Codec(%d)", byte(c))
}

// ParseCodec selects a Codec by name
func ParseCodec(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return LZ4, nil
	}
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return LZ4, fmt.Errorf("unknown codec %q", name)
}

var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdErr     error
)

func initZstd() {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil)
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil)
	})
}

// compress produces the codec byte followed by the compressed data
func (c Codec) compress(data []byte) ([]byte, error) {
	switch c {
	case LZ4:
		buff := bytes.NewBuffer([]byte{byte(c)})
		compressor := lz4.NewWriter(buff)
		if _, err := compressor.Write(data); err != nil {
			return nil, err
		}
		if err := compressor.Close(); err != nil {
			return nil, err
		}
		return buff.Bytes(), nil
	case Snappy:
		return append([]byte{byte(c)}, snappy.Encode(nil, data)...), nil
	case Zstd:
		initZstd()
		if zstdErr != nil {
			return nil, zstdErr
		}
		return zstdEncoder.EncodeAll(data, []byte{byte(c)}), nil
	case NoCompression:
		return append([]byte{byte(c)}, data...), nil
	default:
		return nil, fmt.Errorf("unknown codec %d", byte(c))
	}
}

// decompress reverses compress, reading the codec from the first byte
func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("serialized accumulator is empty")
	}
	c, payload := Codec(data[0]), data[1:]
	switch c {
	case LZ4:
		buff := new(bytes.Buffer)
		if _, err := buff.ReadFrom(lz4.NewReader(bytes.NewReader(payload))); err != nil {
			return nil, fmt.Errorf("unable to decompress accumulator: %w", err)
		}
		return buff.Bytes(), nil
	case Snappy:
		return snappy.Decode(nil, payload)
	case Zstd:
		initZstd()
		if zstdErr != nil {
			return nil, zstdErr
		}
		return zstdDecoder.DecodeAll(payload, nil)
	case NoCompression:
		return payload, nil
	default:
		return nil, fmt.Errorf("unknown codec %d", byte(c))
	}
}
