package cvars

import "testing"

func TestRendererCoreDefaults(t *testing.T) {
	cases := []struct {
		cv   interface {
			String() string
			Archive() bool
		}
		name    string
		def     string
		archive bool
	}{
		{RFullbright, "r_fullbright", "0", false},
		{RNoVis, "r_novis", "0", true},
		{RDrawWorld, "r_drawworld", "1", false},
		{ROverbrightBits, "r_overbrightbits", "1", true},
	}
	for _, c := range cases {
		if c.cv.String() != c.def {
			t.Errorf("%s: default = %q, want %q", c.name, c.cv.String(), c.def)
		}
		if c.cv.Archive() != c.archive {
			t.Errorf("%s: Archive() = %v, want %v", c.name, c.cv.Archive(), c.archive)
		}
	}
}

func TestPostProcessChainDefaults(t *testing.T) {
	if RBloom.String() != "1" || !RBloom.Archive() {
		t.Errorf("expected r_bloom default 1, archived")
	}
	if RBloomThreshold.Value() != 0.8 {
		t.Errorf("expected r_bloom_threshold default 0.8, got %v", RBloomThreshold.Value())
	}
	if RFSRScale.Value() != 1.0 {
		t.Errorf("expected r_fsr_scale default 1.0, got %v", RFSRScale.Value())
	}
}

func TestDeviceLatchFlags(t *testing.T) {
	if !VkMode.Latched() {
		t.Errorf("expected vk_mode to carry the LATCH flag")
	}
	if !VidFullscreen.Latched() {
		t.Errorf("expected vid_fullscreen to carry the LATCH flag")
	}
	if VidGamma.Latched() {
		t.Errorf("expected vid_gamma not to carry the LATCH flag")
	}
}

func TestDebugCvarsAreNotArchived(t *testing.T) {
	debug := []interface{ Archive() bool }{VkLightmap, VkShowTris, VkLockPVS, VkClear, VkFinish, VkLog}
	for i, cv := range debug {
		if cv.Archive() {
			t.Errorf("debug cvar %d: expected NONE flag, got Archive() true", i)
		}
	}
}

func TestClientInterpolationDefaults(t *testing.T) {
	if ClientExtrapolate.String() != "1" {
		t.Errorf("expected cl_extrapolate default 1, got %q", ClientExtrapolate.String())
	}
	if ClientExtrapolateMax.Value() != 200 {
		t.Errorf("expected cl_extrapolate_max default 200, got %v", ClientExtrapolateMax.Value())
	}
	if ClientNoLerp.Bool() {
		t.Errorf("expected cl_nolerp default false")
	}
}

func TestConsoleDefaults(t *testing.T) {
	if ConNotifyTime.Value() != 3 {
		t.Errorf("expected con_notifytime default 3, got %v", ConNotifyTime.Value())
	}
	if ScreenConsoleWidth.Value() != 0 {
		t.Errorf("expected scr_conwidth default 0, got %v", ScreenConsoleWidth.Value())
	}
}
