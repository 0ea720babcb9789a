package mm

import (
	"testing"

	"rvos/kernel"
)

func TestFrameMethods(t *testing.T) {
	for frameIndex := uintptr(0x80200); frameIndex < 0x80280; frameIndex++ {
		frame := Frame(frameIndex)

		if exp, got := frameIndex<<PageShift, frame.Address(); got != exp {
			t.Errorf("expected frame %d Address() to return %x; got %x", frameIndex, exp, got)
		}
	}
}

func TestAddressConversions(t *testing.T) {
	specs := []struct {
		input     uintptr
		expFrame  Frame
		expPage   Page
		aligned   bool
		alignUp   uintptr
		alignDown uintptr
	}{
		{0, 0, 0, true, 0, 0},
		{4095, 0, 0, false, 4096, 0},
		{4096, 1, 1, true, 4096, 4096},
		{0x80220123, 0x80220, 0x80220, false, 0x80221000, 0x80220000},
	}

	for specIndex, spec := range specs {
		if got := FrameFromAddress(spec.input); got != spec.expFrame {
			t.Errorf("[spec %d] expected frame %x; got %x", specIndex, spec.expFrame, got)
		}
		if got := PageFromAddress(spec.input); got != spec.expPage {
			t.Errorf("[spec %d] expected page %x; got %x", specIndex, spec.expPage, got)
		}
		if got := IsPageAligned(spec.input); got != spec.aligned {
			t.Errorf("[spec %d] expected IsPageAligned to return %t", specIndex, spec.aligned)
		}
		if got := AlignUp(spec.input); got != spec.alignUp {
			t.Errorf("[spec %d] expected AlignUp to return %x; got %x", specIndex, spec.alignUp, got)
		}
		if got := AlignDown(spec.input); got != spec.alignDown {
			t.Errorf("[spec %d] expected AlignDown to return %x; got %x", specIndex, spec.alignDown, got)
		}
	}
}

func TestFrameAllocator(t *testing.T) {
	var allocCalled bool
	customAlloc := func() (Frame, *kernel.Error) {
		allocCalled = true
		return FrameFromAddress(0x80220000), nil
	}

	defer SetFrameAllocator(nil)
	SetFrameAllocator(customAlloc)

	frame, err := AllocFrame()
	if err != nil {
		t.Fatal(err)
	}

	if !allocCalled || frame != 0x80220 {
		t.Fatalf("expected custom allocator to return frame 0x80220; got %x", frame)
	}
}

func TestSizePages(t *testing.T) {
	specs := []struct {
		size Size
		exp  uint32
	}{
		{0, 0},
		{Byte, 1},
		{4 * Kb, 1},
		{64 * Kb, 16},
		{Mb + 1, 257},
	}

	for specIndex, spec := range specs {
		if got := spec.size.Pages(); got != spec.exp {
			t.Errorf("[spec %d] expected %d pages; got %d", specIndex, spec.exp, got)
		}
	}
}
