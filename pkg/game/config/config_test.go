package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"WINTERCARD_VARIANT", "WINTERCARD_STORE", "WINTERCARD_DATA_DIR", "WINTERCARD_LANG", "WINTERCARD_RENDERER", "WINTERCARD_MUTE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Variant != "terminal" || c.Store != StoreFile || c.Renderer != RendererTUI || c.Lang != "en_GB" {
		t.Errorf("Load() = %+v", c)
	}
	if c.DataDir == "" {
		t.Error("DataDir is empty")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("WINTERCARD_VARIANT", "estate")
	t.Setenv("WINTERCARD_STORE", "sqlite")
	t.Setenv("WINTERCARD_DATA_DIR", "/tmp/wc")
	t.Setenv("WINTERCARD_MUTE", "true")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Variant != "estate" || c.Store != StoreSQLite || c.DataDir != "/tmp/wc" || !c.Mute {
		t.Errorf("Load() = %+v", c)
	}
}

func TestLoad_BadBool(t *testing.T) {
	t.Setenv("WINTERCARD_MUTE", "loud")
	if _, err := Load(); err == nil {
		t.Error("Load() error = nil for WINTERCARD_MUTE=loud")
	}
}

func TestValidate(t *testing.T) {
	variants := []string{"estate", "terminal"}
	good := Config{Variant: "estate", Store: StoreMemory, Renderer: RendererEbiten}
	if err := good.Validate(variants); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	for _, bad := range []Config{
		{Variant: "nope", Store: StoreFile, Renderer: RendererTUI},
		{Variant: "estate", Store: "s3", Renderer: RendererTUI},
		{Variant: "estate", Store: StoreFile, Renderer: "web"},
	} {
		if err := bad.Validate(variants); err == nil {
			t.Errorf("Validate(%+v) error = nil", bad)
		}
	}
}
