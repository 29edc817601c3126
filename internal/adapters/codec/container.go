package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/zerr"
)

// FormatVersion is the only container version this package reads and writes.
const FormatVersion uint16 = 1

const (
	flagZstd uint8 = 1 << 0

	// magic(4) | version(2) | flags(1) | checksum(8)
	headerSize = 4 + 2 + 1 + 8
)

var magic = [4]byte{'P', 'Q', 'C', '1'}

// header is the fixed prefix of every encoded blob.
type header struct {
	Version  uint16
	Flags    uint8
	Checksum uint64
}

// seal frames payload in a container, compressing it first when compress is set.
func seal(payload []byte, compress bool) ([]byte, error) {
	var flags uint8
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, zerr.Wrap(err, "failed to create zstd encoder")
		}
		payload = enc.EncodeAll(payload, make([]byte, 0, len(payload)/2))
		if err := enc.Close(); err != nil {
			return nil, zerr.Wrap(err, "failed to close zstd encoder")
		}
		flags |= flagZstd
	}

	out := make([]byte, headerSize, headerSize+len(payload))
	copy(out[0:4], magic[:])
	binary.BigEndian.PutUint16(out[4:6], FormatVersion)
	out[6] = flags
	binary.BigEndian.PutUint64(out[7:15], xxhash.Sum64(payload))
	return append(out, payload...), nil
}

// open validates the container framing and returns the decompressed payload.
func (c *Codec) open(data []byte) ([]byte, error) {
	if len(data) < headerSize || !bytes.Equal(data[0:4], magic[:]) {
		return nil, zerr.With(domain.ErrDecode, "reason", "bad magic")
	}

	h := header{
		Version:  binary.BigEndian.Uint16(data[4:6]),
		Flags:    data[6],
		Checksum: binary.BigEndian.Uint64(data[7:15]),
	}
	if h.Version != FormatVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, domain.ErrDecode.Error()), "version", h.Version)
	}

	payload := data[headerSize:]
	if sum := xxhash.Sum64(payload); sum != h.Checksum {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, domain.ErrDecode.Error()),
			"expected", h.Checksum), "actual", sum)
	}

	if h.Flags&flagZstd == 0 {
		return payload, nil
	}

	out, err := c.zstd.DecodeAll(payload, nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDecode.Error())
	}
	return out, nil
}
