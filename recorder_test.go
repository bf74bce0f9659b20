package present

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestClearPassRecord(t *testing.T) {
	enc := &fakeEncoder{}
	view := &fakeView{}
	color := gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}

	err := ClearPass{Color: color, Label: "bg"}.Record(enc, Target{View: view, Size: Size{Width: 2, Height: 2}})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if len(enc.passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(enc.passes))
	}
	desc := enc.passes[0]
	if desc.Label != "bg" {
		t.Errorf("label = %q, want bg", desc.Label)
	}
	att := desc.ColorAttachments[0]
	if att.View != view || att.ClearValue != color || att.LoadOp != gputypes.LoadOpClear {
		t.Errorf("attachment = %+v", att)
	}
}

func TestClearPassBeginError(t *testing.T) {
	enc := &fakeEncoder{passErr: errFake}
	if err := (ClearPass{}).Record(enc, Target{}); !errors.Is(err, errFake) {
		t.Errorf("Record() error = %v, want errFake", err)
	}
}

func TestRecorderFunc(t *testing.T) {
	var got Target
	rec := RecorderFunc(func(_ CommandEncoder, target Target) error {
		got = target
		return nil
	})
	want := Target{Size: Size{Width: 3, Height: 4}, Format: gputypes.TextureFormatRGBA8Unorm}
	if err := rec.Record(&fakeEncoder{}, want); err != nil {
		t.Fatal(err)
	}
	if got.Size != want.Size || got.Format != want.Format {
		t.Errorf("target = %+v, want %+v", got, want)
	}
}
