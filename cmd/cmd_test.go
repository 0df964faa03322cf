package cmd

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"strings"
	"testing"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "ERROR"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeImage(t *testing.T, path string, height int, width int) {
	buffer, err := apitype.NewPixelBuffer(apitype.Uint8, height, width, 3)
	require.Nil(t, err)
	require.Nil(t, backend.InitializeCodec(params).Encode(buffer, path))
}

func TestThumbsCommand(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "thumbs")
	writeImage(t, filepath.Join(dir, "a.jpg"), 40, 20)
	writeImage(t, filepath.Join(dir, "b.jpg"), 20, 40)

	output, err := execute(t, "thumbs", "--out", out, "--bound", "10", dir)
	r.Nil(err)
	a.Contains(output, "2 generated, 0 failed, 0 up to date")
	a.FileExists(filepath.Join(out, "a.jpg"))
	a.FileExists(filepath.Join(out, "catalog.db"))

	output, err = execute(t, "index", "--out", out, "--bound", "10", dir)
	r.Nil(err)
	a.Contains(output, "0 generated, 0 failed, 2 up to date")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	a.Equal([]string{"1", "b", "0", "1"}, strings.Fields(lines[len(lines)-1]))
}

func TestResizeCommands(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 30, 60)

	output, err := execute(t, "resize-image", "--width", "12", "--height", "8", "--kind", "nearest", in, filepath.Join(dir, "out.png"))
	r.Nil(err)
	a.Contains(output, "12x8")

	_, err = execute(t, "resize-image", "--width", "12", "--height", "8", "--kind", "cubic", in, filepath.Join(dir, "out.png"))
	a.ErrorIs(err, apitype.ErrUnsupportedKind)

	mask := filepath.Join(dir, "mask.png")
	maskBuffer, err := apitype.NewPixelBuffer(apitype.Uint8, 6, 6, 0)
	r.Nil(err)
	r.Nil(backend.InitializeCodec(params).Encode(maskBuffer, mask))

	output, err = execute(t, "resize-mask", "--bound", "3", "--palette", mask, filepath.Join(dir, "mask-small.png"))
	r.Nil(err)
	a.Contains(output, "3x3")
}

func TestRootCommand_InvalidParams(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	_, err := execute(t, "thumbs", "--out", out, "--bound", "0", t.TempDir())
	assert.NotNil(t, err)

	// Flags keep their values between executions
	_, err = execute(t, "thumbs", "--out", out, "--bound", "150", filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, err)
}
