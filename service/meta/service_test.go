package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

type document struct {
	Policy  string `yaml:"policy"`
	Quantum int    `yaml:"quantum"`
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.yaml"), []byte("policy: ${env.POLICY}\nquantum: 3\n"), 0644))

	srv := New(afs.New(), dir).WithLookup(func(key string) string {
		if key == "POLICY" {
			return "RoundRobin"
		}
		return ""
	})

	var doc document
	err := srv.Load(context.Background(), "engine.yaml", &doc)
	require.NoError(t, err)
	assert.Equal(t, document{Policy: "RoundRobin", Quantum: 3}, doc)

	err = srv.Load(context.Background(), "missing.yaml", &doc)
	assert.Error(t, err)
}

func TestService_URL(t *testing.T) {
	testCases := []struct {
		name     string
		baseURL  string
		location string
		expect   string
	}{
		{name: "no base", location: "a.yaml", expect: "a.yaml"},
		{name: "relative", baseURL: "mem://localhost/cfg", location: "a.yaml", expect: "mem://localhost/cfg/a.yaml"},
		{name: "absolute path", baseURL: "mem://localhost/cfg", location: "/tmp/a.yaml", expect: "/tmp/a.yaml"},
		{name: "absolute url", baseURL: "mem://localhost/cfg", location: "file:///tmp/a.yaml", expect: "file:///tmp/a.yaml"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, New(nil, tc.baseURL).URL(tc.location))
		})
	}
}
