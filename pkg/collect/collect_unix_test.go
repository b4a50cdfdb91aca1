//go:build unix

package collect

import (
	"path/filepath"
	"syscall"
	"testing"

	"arquivao/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCollect_SkipsSpecialFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt")
	if err := syscall.Mkfifo(filepath.Join(root, "pipe"), 0o644); err != nil {
		t.Skipf("fifos unsupported: %v", err)
	}

	files, err := New(config.Exclusions{}, nil, zaptest.NewLogger(t)).Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relSorted(t, root, files))
}
