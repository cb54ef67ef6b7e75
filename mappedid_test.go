package nnclient

import (
	"encoding/xml"
	"testing"
)

const mappedIDsDocXML = `<mapped_ids>
<mapped_id>
<in_id>marcrasi</in_id>
<out_id>1794841894</out_id>
</mapped_id>
<mapped_id>
<in_id>nobody-here</in_id>
<out_id></out_id>
</mapped_id>
</mapped_ids>`

func TestMappedIDsUnmarshal(t *testing.T) {
	var mapped MappedIDs
	if err := xml.Unmarshal([]byte(mappedIDsDocXML), &mapped); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(mapped.Mapped) != 2 {
		t.Fatalf("len(Mapped) = %d, want 2", len(mapped.Mapped))
	}

	out, ok := mapped.Lookup("marcrasi")
	if !ok || out != "1794841894" {
		t.Errorf("Lookup(marcrasi) = %q, %t", out, ok)
	}

	// an empty out_id means the server had no mapping for the input
	if _, ok := mapped.Lookup("nobody-here"); ok {
		t.Error("Lookup(nobody-here) reported a mapping")
	}

	if _, ok := mapped.Lookup("never-asked"); ok {
		t.Error("Lookup(never-asked) reported a mapping")
	}
}
