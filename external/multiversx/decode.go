package multiversx

import (
	"encoding/binary"
	"fmt"
	"math/big"

	crerr "github.com/cockroachdb/errors"

	"github.com/chainfoot/nft-fantasy/internal/domain/market"
)

const addressLen = 32

// payloadReader walks the contract's nested binary encoding: fixed-width
// big-endian integers, 32-byte addresses, and u32-length-prefixed byte
// slices for dynamic fields.
type payloadReader struct {
	buf []byte
	off int
}

func newPayloadReader(buf []byte) *payloadReader {
	return &payloadReader{buf: buf}
}

func (r *payloadReader) remaining() int {
	return len(r.buf) - r.off
}

func (r *payloadReader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, crerr.Newf("payload truncated: need %d bytes at offset %d, have %d", n, r.off, r.remaining())
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *payloadReader) readU32() (uint32, error) {
	raw, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw), nil
}

func (r *payloadReader) readU64() (uint64, error) {
	raw, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (r *payloadReader) readBytes() ([]byte, error) {
	length, err := r.readU32()
	if err != nil {
		return nil, err
	}
	return r.take(int(length))
}

func (r *payloadReader) readBigUint() (*big.Int, error) {
	raw, err := r.readBytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func (r *payloadReader) readAddress() (string, error) {
	raw, err := r.take(addressLen)
	if err != nil {
		return "", err
	}
	return encodeBech32("erd", raw)
}

// decodeOffer reads one offer tuple: id, creator, collection, nonce, price,
// available edition count.
func decodeOffer(payload []byte) (market.Offer, error) {
	r := newPayloadReader(payload)

	id, err := r.readU64()
	if err != nil {
		return market.Offer{}, crerr.Wrap(err, "offer id")
	}
	creator, err := r.readAddress()
	if err != nil {
		return market.Offer{}, crerr.Wrap(err, "offer creator")
	}
	collection, err := r.readBytes()
	if err != nil {
		return market.Offer{}, crerr.Wrap(err, "offer collection")
	}
	nonce, err := r.readU64()
	if err != nil {
		return market.Offer{}, crerr.Wrap(err, "offer nonce")
	}
	price, err := r.readBigUint()
	if err != nil {
		return market.Offer{}, crerr.Wrap(err, "offer price")
	}
	available, err := r.readU32()
	if err != nil {
		return market.Offer{}, crerr.Wrap(err, "offer availability")
	}
	if r.remaining() != 0 {
		return market.Offer{}, crerr.Newf("offer payload has %d trailing bytes", r.remaining())
	}

	return market.Offer{
		ID:             id,
		Creator:        creator,
		Collection:     string(collection),
		Token:          fmt.Sprintf("%s-%02x", collection, nonce),
		Price:          price,
		AvailableCount: available,
	}, nil
}

// decodeU32 reads an optional big-endian counter; contracts return an empty
// buffer for zero.
func decodeU32(payload []byte) (uint32, error) {
	if len(payload) == 0 {
		return 0, nil
	}
	if len(payload) > 4 {
		return 0, crerr.Newf("counter payload too long: %d bytes", len(payload))
	}
	var out uint32
	for _, b := range payload {
		out = out<<8 | uint32(b)
	}
	return out, nil
}

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// encodeBech32 renders a 32-byte account address in the chain's bech32
// notation.
func encodeBech32(hrp string, data []byte) (string, error) {
	converted, err := convertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}

	values := append(converted, bech32Checksum(hrp, converted)...)
	out := make([]byte, 0, len(hrp)+1+len(values))
	out = append(out, hrp...)
	out = append(out, '1')
	for _, v := range values {
		out = append(out, bech32Charset[v])
	}
	return string(out), nil
}

func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var acc uint32
	var bits uint
	out := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)
	maxv := uint32(1)<<toBits - 1

	for _, b := range data {
		acc = acc<<fromBits | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte(acc>>bits&maxv))
		}
	}
	if pad {
		if bits > 0 {
			out = append(out, byte(acc<<(toBits-bits)&maxv))
		}
	} else if bits >= fromBits || acc<<(toBits-bits)&maxv != 0 {
		return nil, crerr.New("invalid bech32 padding")
	}

	return out, nil
}

func bech32Polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if top>>uint(i)&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func bech32HrpExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		out = append(out, byte(c)>>5)
	}
	out = append(out, 0)
	for _, c := range hrp {
		out = append(out, byte(c)&31)
	}
	return out
}

func bech32Checksum(hrp string, data []byte) []byte {
	values := append(bech32HrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	polymod := bech32Polymod(values) ^ 1
	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		out[i] = byte(polymod >> uint(5*(5-i)) & 31)
	}
	return out
}
