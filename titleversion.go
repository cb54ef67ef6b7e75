package nnclient

// TitleVersion is the packed 16-bit title version used from the DS up to the
// Wii U: six bits of major, six of minor, four of micro.
type TitleVersion uint16

const (
	titleVersionMinorMask = 0x03F0
	titleVersionMicroMask = 0x000F
)

// NewTitleVersion packs a version from its segments. Major and minor are
// truncated to six bits, micro to four.
func NewTitleVersion(major, minor, micro uint8) TitleVersion {
	return TitleVersion(major&0x3F)<<10 | TitleVersion(minor&0x3F)<<4 | TitleVersion(micro&0x0F)
}

// Major extracts the major segment.
func (v TitleVersion) Major() uint8 {
	return uint8(v >> 10)
}

// Minor extracts the minor segment.
func (v TitleVersion) Minor() uint8 {
	return uint8((v & titleVersionMinorMask) >> 4)
}

// Micro extracts the micro segment.
func (v TitleVersion) Micro() uint8 {
	return uint8(v & titleVersionMicroMask)
}
