/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
version: 1
generatedAt: 2025-06-01T12:00:00Z
bindings:
  - key: cache
    provider: memcache
    doc: default in-process backend
  - key: codec
    provider: codec-v2
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 1, m.Version)
	require.Len(t, m.Bindings, 2)
	assert.Equal(t, "cache", m.Bindings[0].Key)
	assert.Equal(t, "memcache", m.Bindings[0].Provider)
	assert.Equal(t, "default in-process backend", m.Bindings[0].Doc)

	require.NoError(t, m.Validate())

	gen, err := m.Generated()
	require.NoError(t, err)
	assert.False(t, gen.String() == "", "generatedAt should parse to a non-zero DateTime")
}

func TestParseEnvExpansion(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")

	m, err := Parse([]byte(`
version: 1
bindings:
  - key: cache
    provider: ${CACHE_BACKEND}
`))
	require.NoError(t, err)
	assert.Equal(t, "redis", m.Bindings[0].Provider)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Bindings, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Manifest)
		wantErr string
	}{
		{
			name:    "wrong version",
			mutate:  func(m *Manifest) { m.Version = 2 },
			wantErr: "unsupported manifest version",
		},
		{
			name:    "bad timestamp",
			mutate:  func(m *Manifest) { m.GeneratedAt = "yesterday" },
			wantErr: "not an RFC 3339 date-time",
		},
		{
			name:    "empty key",
			mutate:  func(m *Manifest) { m.Bindings[0].Key = "" },
			wantErr: "empty key",
		},
		{
			name:    "empty provider",
			mutate:  func(m *Manifest) { m.Bindings[1].Provider = "" },
			wantErr: "empty provider",
		},
		{
			name:    "self alias",
			mutate:  func(m *Manifest) { m.Bindings[0].Provider = m.Bindings[0].Key },
			wantErr: "aliases itself",
		},
		{
			name:    "duplicate key",
			mutate:  func(m *Manifest) { m.Bindings[1].Key = m.Bindings[0].Key },
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(sample))
			require.NoError(t, err)
			tt.mutate(m)

			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// aliasRecorder records Alias calls for Apply tests.
type aliasRecorder struct {
	calls [][2]string
	fail  map[string]error
}

func (r *aliasRecorder) Alias(dst, src string) error {
	if err, ok := r.fail[dst]; ok {
		return err
	}
	r.calls = append(r.calls, [2]string{dst, src})
	return nil
}

func TestApply(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	rec := &aliasRecorder{}
	require.NoError(t, Apply(m, rec))

	require.Len(t, rec.calls, 2)
	assert.Equal(t, [2]string{"cache", "memcache"}, rec.calls[0])
	assert.Equal(t, [2]string{"codec", "codec-v2"}, rec.calls[1])
}

func TestApplyValidatesFirst(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	m.Version = 99

	rec := &aliasRecorder{}
	err = Apply(m, rec)
	require.Error(t, err)
	assert.Empty(t, rec.calls, "Apply must not install bindings from an invalid manifest")
}

func TestApplyStopsOnFirstFailure(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	rec := &aliasRecorder{fail: map[string]error{"cache": os.ErrNotExist}}
	err = Apply(m, rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `binding "cache"`)
	assert.Empty(t, rec.calls, "later bindings must not apply after a failure")
}
