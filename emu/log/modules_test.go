package log

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestModuleByName(t *testing.T) {
	for _, name := range []string{"emu", "session", "layout", "input", "render", "sound"} {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Fatalf("ModuleByName(%q) not found", name)
		}
		if mod.String() != name {
			t.Errorf("ModuleByName(%q).String() = %q", name, mod.String())
		}
	}

	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("ModuleByName must not return the placeholder module")
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("ModuleByName(nope) should fail")
	}
}

func TestDebugMask(t *testing.T) {
	defer DisableDebugModules(ModuleMaskAll)

	if ModLayout.Enabled(DebugLevel) {
		t.Fatalf("debug should be disabled by default")
	}
	if !ModLayout.Enabled(WarnLevel) {
		t.Fatalf("warnings should always be enabled")
	}
	if ModLayout.DebugZ("x") != nil {
		t.Fatalf("disabled module must return a nil entry")
	}

	EnableDebugModules(ModLayout.Mask())
	if !ModLayout.Enabled(DebugLevel) {
		t.Fatalf("debug should be enabled for layout")
	}
	if ModSession.Enabled(DebugLevel) {
		t.Fatalf("debug should not be enabled for session")
	}
}

func TestEntryZFields(t *testing.T) {
	// A nil entry accepts the whole chain.
	var z *EntryZ
	z.String("a", "b").Int("c", 1).Error("err", errors.New("x")).End()

	z = NewEntryZ()
	z.String("s", "str").Int("i", -3).Bool("b", true).Hex16("h", 0xbeef).Duration("d", time.Second)

	var got []string
	for i := range z.zfbuf[:z.zfidx] {
		got = append(got, z.zfbuf[i].Key+"="+z.zfbuf[i].Value())
	}
	want := []string{"s=str", "i=-3", "b=true", "h=beef", "d=1s"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
