package nnclient

import "testing"

func TestTitleIDSegments(t *testing.T) {
	// system settings (mset), USA
	mset := TitleID(0x0004001000021000)

	platform, ok := mset.Platform()
	if !ok || platform != Platform3DS {
		t.Errorf("platform = %v, %t, want 3ds", platform, ok)
	}
	if got := mset.Category(); got != CategorySystem {
		t.Errorf("category = %#x, want %#x", uint16(got), uint16(CategorySystem))
	}
	if got := mset.UniqueID(); got != 0x210 {
		t.Errorf("unique id = %#x, want 0x210", uint32(got))
	}
	if got := mset.Variation(); got != 0 {
		t.Errorf("variation = %d, want 0", got)
	}
	if got := mset.High(); got != 0x00040010 {
		t.Errorf("high = %#x, want 0x00040010", got)
	}
	if got := mset.Low(); got != 0x00021000 {
		t.Errorf("low = %#x, want 0x00021000", got)
	}
}

func TestTitleIDAssembly(t *testing.T) {
	id := NewTitleID(Platform3DS, CategorySystem, 0x210, 0)
	if id != 0x0004001000021000 {
		t.Errorf("NewTitleID() = %#016x, want 0x0004001000021000", uint64(id))
	}

	if got := TitleIDFromHalves(0x00050010, 0x10041000); got != 0x0005001010041000 {
		t.Errorf("TitleIDFromHalves() = %#016x", uint64(got))
	}

	// reassembling the segments must reproduce the id
	reassembled := NewTitleID(Platform3DS, id.Category(), id.UniqueID(), id.Variation())
	if reassembled != id {
		t.Errorf("reassembled = %#016x, want %#016x", uint64(reassembled), uint64(id))
	}
}

func TestTitleIDUnknownPlatform(t *testing.T) {
	if _, ok := TitleID(0x0001000000000000).Platform(); ok {
		t.Error("platform 1 recognized")
	}
}

func TestCategoryIsNormal(t *testing.T) {
	tests := []struct {
		category Category
		normal   bool
	}{
		{0, true},
		{CategoryDLPChild, true},
		{CategoryDemo, true},
		{CategoryContents, false},
		{CategorySystem, true},
		{CategoryPatch, false},
	}

	for _, tt := range tests {
		if got := tt.category.IsNormal(); got != tt.normal {
			t.Errorf("Category(%#x).IsNormal() = %t, want %t", uint16(tt.category), got, tt.normal)
		}
	}
}

func TestUniqueIDGroup(t *testing.T) {
	tests := []struct {
		id    UniqueID
		group UniqueIDGroup
		ok    bool
	}{
		{0x210, GroupSystem, true},
		{0x300, GroupApplication, true},
		{0xF7FFF, GroupApplication, true},
		{0xF8000, GroupEvaluation, true},
		{0xFF000, GroupPrototype, true},
		{0xFF400, GroupDeveloper, true},
		{0xFF800, 0, false},
	}

	for _, tt := range tests {
		group, ok := tt.id.Group()
		if group != tt.group || ok != tt.ok {
			t.Errorf("UniqueID(%#x).Group() = %v, %t, want %v, %t", uint32(tt.id), group, ok, tt.group, tt.ok)
		}
	}
}

func TestUniqueIDIsNew3DSOnly(t *testing.T) {
	if !UniqueID(0x20F800).IsNew3DSOnly() {
		t.Error("hardware nibble 2 not reported as New 3DS only")
	}
	if UniqueID(0x000210).IsNew3DSOnly() {
		t.Error("hardware nibble 0 reported as New 3DS only")
	}
}
