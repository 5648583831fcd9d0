package config

import (
	"testing"

	"github.com/ausocean/videomixer/compositor"
)

func TestMixerAttrsUpdateBackground(t *testing.T) {
	a := DefaultMixerAttrs()
	if a.Background != compositor.Checker {
		t.Fatalf("default background = %v, want Checker", a.Background)
	}
	if err := a.Update(KeyBackground, "transparent"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.Background != compositor.Transparent {
		t.Errorf("Background = %v, want Transparent", a.Background)
	}
}

func TestMixerAttrsUpdateUnknownValue(t *testing.T) {
	a := DefaultMixerAttrs()
	if err := a.Update(KeyBackground, "plaid"); err == nil {
		t.Fatal("expected error for unknown background value")
	}
}

func TestMixerAttrsUpdateUnknownKey(t *testing.T) {
	a := DefaultMixerAttrs()
	if err := a.Update("bogus", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
