package format

type (
	Tier            uint8
	CompressionType uint8
)

// Delta precision tiers. The low nibble of a tier byte selects the width of the
// payload that follows it; TierNextLarger is OR-ed in for unsigned-magnitude deltas.
const (
	TierUnset Tier = 0x0 // TierUnset marks "no encodable change", no payload follows.
	Tier8     Tier = 0x1 // Tier8 is followed by one payload byte.
	Tier16    Tier = 0x2 // Tier16 is followed by two payload bytes.
	Tier32    Tier = 0x3 // Tier32 is followed by four payload bytes.
	Tier64    Tier = 0x4 // Tier64 is followed by eight payload bytes.
	Tier128   Tier = 0x5 // Tier128 is followed by two eight-byte words, low word first.
	TierFull  Tier = 0x6 // TierFull is followed by the next value in its unpacked form.

	TierMask       Tier = 0x0F // TierMask selects the width bits of a tier byte.
	TierNextLarger Tier = 0x80 // TierNextLarger flags that the next value is larger than the previous.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Width returns the tier with the direction bit stripped.
func (t Tier) Width() Tier {
	return t & TierMask
}

// NextLarger reports whether the direction bit is set.
func (t Tier) NextLarger() bool {
	return t&TierNextLarger != 0
}

// PayloadSize returns the number of payload bytes that follow a tier byte,
// or -1 for TierFull whose size depends on the value type.
func (t Tier) PayloadSize() int {
	switch t.Width() {
	case TierUnset:
		return 0
	case Tier8:
		return 1
	case Tier16:
		return 2
	case Tier32:
		return 4
	case Tier64:
		return 8
	case Tier128:
		return 16
	default:
		return -1
	}
}

// Valid reports whether the width bits name a known tier and no reserved bit is set.
func (t Tier) Valid() bool {
	return t&^(TierMask|TierNextLarger) == 0 && t.Width() <= TierFull
}

func (t Tier) String() string {
	switch t.Width() {
	case TierUnset:
		return "Unset"
	case Tier8:
		return "8bit"
	case Tier16:
		return "16bit"
	case Tier32:
		return "32bit"
	case Tier64:
		return "64bit"
	case Tier128:
		return "128bit"
	case TierFull:
		return "Full"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-sensitive lower-case name to a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
