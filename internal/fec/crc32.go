// Package fec provides the frame-check and outer-coding utilities
// consumed by the MAC framer. Nothing here is wired into the PHY
// pipeline itself.
package fec

// Table-driven CRC-32 with the reflected polynomial 0xEDB88320,
// initial and final register 0xFFFFFFFF. The checksum is appended to
// frames as four bytes in little-endian order.

const crcPolynomial = 0xEDB88320

// crcTable is built once at init and read-only afterwards.
var crcTable = buildCRCTable()

func buildCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		r := uint32(i)
		for j := 0; j < 8; j++ {
			if r&1 != 0 {
				r = (r >> 1) ^ crcPolynomial
			} else {
				r >>= 1
			}
		}
		table[i] = r
	}
	return table
}

// CRC32 computes the checksum of data.
func CRC32(data []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}

// CRC32Bytes returns the checksum as 4 bytes in little-endian order.
func CRC32Bytes(data []byte) []byte {
	crc := CRC32(data)
	return []byte{
		byte(crc),
		byte(crc >> 8),
		byte(crc >> 16),
		byte(crc >> 24),
	}
}

// AppendCRC32 appends the little-endian checksum to the data.
func AppendCRC32(data []byte) []byte {
	result := make([]byte, 0, len(data)+4)
	result = append(result, data...)
	return append(result, CRC32Bytes(data)...)
}

// VerifyCRC32 checks the trailing checksum. It returns the data without
// the checksum and whether verification passed.
func VerifyCRC32(dataWithCRC []byte) ([]byte, bool) {
	if len(dataWithCRC) < 4 {
		return nil, false
	}

	data := dataWithCRC[:len(dataWithCRC)-4]
	trailer := dataWithCRC[len(dataWithCRC)-4:]
	expected := uint32(trailer[0]) | uint32(trailer[1])<<8 |
		uint32(trailer[2])<<16 | uint32(trailer[3])<<24

	return data, CRC32(data) == expected
}
