package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "skyvault/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	api := root.Prefix("API_")
	if got := api.key("PORT"); got != "API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "API_PORT")
	}
	// nested prefix
	apiLog := api.Prefix("LOG_")
	if got := apiLog.key("LEVEL"); got != "API_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "API_LOG_LEVEL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  skyvault ")
	if got := c.MustString("NAME"); got != "skyvault" {
		t.Fatalf("MustString = %q, want %q", got, "skyvault")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("API_")
	t.Setenv("API_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q, want %q", got, ":4000")
	}
	t.Setenv("API_PORT", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("PORT") })
	t.Setenv("API_PORT", "not-a-port")
	kit.MustPanic(t, func() { _ = c.MustPort("PORT") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("NAME", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("S_NAME", " skyvault ")
	if got := c.MayString("NAME", "x"); got != "skyvault" {
		t.Fatalf("MayString value = %q, want %q", got, "skyvault")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("N", 7); got != 7 {
		t.Fatalf("MayInt default = %d, want 7", got)
	}
	t.Setenv("I_N", " 42 ")
	if got := c.MayInt("N", 7); got != 42 {
		t.Fatalf("MayInt = %d, want 42", got)
	}
	t.Setenv("I_N", "nope")
	if got := c.MayInt("N", 7); got != 7 {
		t.Fatalf("MayInt invalid = %d, want default 7", got)
	}
}

func TestMayInt64AndFloat64(t *testing.T) {
	c := New().Prefix("N_")
	t.Setenv("N_BYTES", "10500000")
	if got := c.MayInt64("BYTES", 1); got != 10_500_000 {
		t.Fatalf("MayInt64 = %d", got)
	}
	t.Setenv("N_LONG", "138.60298")
	if got := c.MayFloat64("LONG", 0); got != 138.60298 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayFloat64("MISSING", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 default = %v", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	t.Setenv("B_ON", " true ")
	if !c.MayBool("ON", false) {
		t.Fatal("MayBool true expected")
	}
	t.Setenv("B_ON", "definitely")
	if c.MayBool("ON", false) {
		t.Fatal("MayBool invalid should fall back to default")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_SLOW", "750ms")
	if got := c.MayDuration("SLOW", time.Second); got != 750*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("MISSING", time.Second); got != time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DOTENV_ONLY=from-file\nDOTENV_KEPT=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_KEPT", "from-env")

	DotEnv(path)
	t.Cleanup(func() { os.Unsetenv("DOTENV_ONLY") })

	if got := os.Getenv("DOTENV_ONLY"); got != "from-file" {
		t.Fatalf("DOTENV_ONLY = %q, want value from file", got)
	}
	// existing environment wins over the file
	if got := os.Getenv("DOTENV_KEPT"); got != "from-env" {
		t.Fatalf("DOTENV_KEPT = %q, want value from env", got)
	}

	// a missing file is silently ignored
	kit.MustNotPanic(t, func() { DotEnv(filepath.Join(dir, "absent.env")) })
}
