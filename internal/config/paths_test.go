package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oewsq/pkg/contracts/domain"
)

// chdir replicates t.Chdir for toolchains older than Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func TestSourceFile(t *testing.T) {
	d := DataConfig{}

	tests := []struct {
		kind domain.TableKind
		want string
	}{
		{domain.KindNational, "national_M2024_dl.xlsx"},
		{domain.KindState, "state_M2024_dl.xlsx"},
		{domain.KindMSA, "MSA_M2024_dl.xlsx"},
		{domain.KindNatSector, "natsector_M2024_dl.xlsx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			name, ok := d.SourceFile(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.want, name)
		})
	}

	_, ok := d.SourceFile(domain.TableKind("county"))
	assert.False(t, ok)
}

func TestSourceFileOverride(t *testing.T) {
	d := DataConfig{Sources: map[string]string{"national": "national_M2023_dl.xlsx"}}

	name, ok := d.SourceFile(domain.KindNational)
	require.True(t, ok)
	assert.Equal(t, "national_M2023_dl.xlsx", name)

	// Other kinds keep the release defaults.
	name, ok = d.SourceFile(domain.KindState)
	require.True(t, ok)
	assert.Equal(t, "state_M2024_dl.xlsx", name)
}

func TestResolveAbsolute(t *testing.T) {
	d := DataConfig{Dir: "data", FallbackDir: t.TempDir()}
	abs := filepath.Join(t.TempDir(), "anything.xlsx")

	// Absolute paths pass through even when they do not exist.
	assert.Equal(t, abs, d.Resolve(abs))
}

func TestResolveWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "state_M2024_dl.xlsx"), []byte("x"), 0o644))
	chdir(t, dir)

	d := DataConfig{Dir: "data"}
	got := d.Resolve(filepath.Join("data", "state_M2024_dl.xlsx"))
	assert.Equal(t, filepath.Join("data", "state_M2024_dl.xlsx"), got)
}

func TestResolveFallbackDir(t *testing.T) {
	work := t.TempDir()
	fallback := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(fallback, "MSA_M2024_dl.xlsx"), []byte("x"), 0o644))
	chdir(t, work)

	d := DataConfig{Dir: "data", FallbackDir: fallback}
	got := d.Resolve(filepath.Join("data", "MSA_M2024_dl.xlsx"))
	assert.Equal(t, filepath.Join(fallback, "MSA_M2024_dl.xlsx"), got)
}

func TestResolveMissingEverywhere(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	d := DataConfig{Dir: "data", FallbackDir: filepath.Join(work, "no-such-dir")}
	candidate := filepath.Join("data", "national_M2024_dl.xlsx")

	// The unresolved candidate comes back and the reader reports the miss.
	assert.Equal(t, candidate, d.Resolve(candidate))
}

func TestSourcePath(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	d := DataConfig{Dir: "data"}

	path, ok := d.SourcePath(domain.KindNational)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("data", "national_M2024_dl.xlsx"), path)

	_, ok = d.SourcePath(domain.TableKind("county"))
	assert.False(t, ok)
}
