package nnclient

// TitleID is the 64-bit identifier the 3DS and Wii U use to distinguish
// titles. From high to low: a 16-bit platform, a 16-bit category bitfield, a
// 24-bit unique id and an 8-bit variation.
type TitleID uint64

const (
	titleIDPlatformShift = 48
	titleIDCategoryShift = 32
	titleIDUniqueIDShift = 8

	titleIDCategoryMask  = 0x0000FFFF00000000
	titleIDUniqueIDMask  = 0x00000000FFFFFF00
	titleIDVariationMask = 0x00000000000000FF
)

// Platform is the platform segment of a title id.
type Platform uint16

const (
	Platform3DS  Platform = 4
	PlatformWiiU Platform = 5
)

// Category is the category segment of a title id, a bitfield. Some of the
// named values combine bits (contents is dlp-child|demo, patch is
// demo|add-on-contents).
type Category uint16

const (
	CategoryDLPChild                Category = 0x0001
	CategoryDemo                    Category = 0x0002
	CategoryContents                Category = 0x0003
	CategoryAddOnContents           Category = 0x0004
	CategoryPatch                   Category = 0x0006
	CategoryCannotExecute           Category = 0x0008
	CategorySystem                  Category = 0x0010
	CategoryRequireBatchUpdate      Category = 0x0020
	CategoryNotRequireUserApproval  Category = 0x0040
	CategoryNotRequireRightForMount Category = 0x0080
	CategoryCanSkipConvertJumpID    Category = 0x0100
	CategoryTWL                     Category = 0x8000
)

// IsNormal reports whether the title carries ordinary contents.
func (c Category) IsNormal() bool {
	return c&CategoryContents != CategoryContents
}

// UniqueID is the 24-bit unique id segment of a title id.
type UniqueID uint32

const (
	uniqueIDHardwareMask   UniqueID = 0xF00000
	uniqueIDIdentifierMask UniqueID = 0x0FFFFF
)

// UniqueIDGroup classifies a unique id by the range conventions documented
// on 3dbrew. Titles are not strictly required to conform, but in practice
// they do.
type UniqueIDGroup int

const (
	GroupSystem UniqueIDGroup = iota
	GroupApplication
	GroupEvaluation
	GroupPrototype
	GroupDeveloper
)

// Group returns the range the unique id's identifier falls in.
func (u UniqueID) Group() (UniqueIDGroup, bool) {
	switch id := u & uniqueIDIdentifierMask; {
	case id < 0x300:
		return GroupSystem, true
	case id < 0xF8000:
		return GroupApplication, true
	case id < 0xFF000:
		return GroupEvaluation, true
	case id < 0xFF400:
		return GroupPrototype, true
	case id < 0xFF800:
		return GroupDeveloper, true
	}
	return 0, false
}

// IsNew3DSOnly reports whether the title only runs on New 3DS hardware.
func (u UniqueID) IsNew3DSOnly() bool {
	return (u&uniqueIDHardwareMask)>>20 == 2
}

// NewTitleID assembles a title id from its four segments.
func NewTitleID(platform Platform, category Category, uniqueID UniqueID, variation uint8) TitleID {
	return TitleID(platform)<<titleIDPlatformShift |
		TitleID(category)<<titleIDCategoryShift |
		TitleID(uniqueID)<<titleIDUniqueIDShift |
		TitleID(variation)
}

// TitleIDFromHalves assembles a title id from its high and low words.
func TitleIDFromHalves(high, low uint32) TitleID {
	return TitleID(high)<<32 | TitleID(low)
}

// Platform extracts the platform segment.
func (t TitleID) Platform() (Platform, bool) {
	switch p := Platform(t >> titleIDPlatformShift); p {
	case Platform3DS, PlatformWiiU:
		return p, true
	default:
		return 0, false
	}
}

// Category extracts the category segment.
func (t TitleID) Category() Category {
	return Category((t & titleIDCategoryMask) >> titleIDCategoryShift)
}

// UniqueID extracts the unique id segment.
func (t TitleID) UniqueID() UniqueID {
	return UniqueID((t & titleIDUniqueIDMask) >> titleIDUniqueIDShift)
}

// Variation extracts the variation segment.
func (t TitleID) Variation() uint8 {
	return uint8(t & titleIDVariationMask)
}

// High returns the platform and category word.
func (t TitleID) High() uint32 {
	return uint32(t >> 32)
}

// Low returns the unique id and variation word.
func (t TitleID) Low() uint32 {
	return uint32(t)
}
