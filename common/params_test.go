package common

import (
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func parse(t *testing.T, args ...string) *Params {
	params := NewEmptyParams()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	params.BindPersistentFlags(flags)
	params.BindThumbnailFlags(flags)
	require.Nil(t, flags.Parse(args))
	if flags.NArg() > 0 {
		params.SetRootPath(flags.Arg(0))
	}
	return params
}

func TestParams_Defaults(t *testing.T) {
	a := assert.New(t)

	params := parse(t, "images")

	a.Equal("images", params.RootPath())
	a.Equal(filepath.Join("images", "thumbnails"), params.OutputDir())
	a.Equal(filepath.Join("images", "thumbnails", "catalog.db"), params.DbPath())
	a.Equal(150, params.Bound())
	a.Equal(4, params.Concurrency())
	a.Equal(".jpg", params.SourceExt())
	a.Equal(".jpg", params.ThumbExt())
	a.Equal(75, params.JpegQuality())
	a.False(params.AutoOrient())
	a.False(params.Force())
	a.Equal("INFO", params.LogLevel())
	a.Nil(params.Validate())
}

func TestParams_Flags(t *testing.T) {
	a := assert.New(t)

	params := parse(t,
		"--out", "thumbs", "--bound", "64", "--concurrency", "16",
		"--source-ext", ".png", "--thumb-ext", ".png", "--quality", "90",
		"--auto-orient", "--force", "--db", "cat.db", "--log-level", "DEBUG",
		"images")

	a.Equal("thumbs", params.OutputDir())
	a.Equal("cat.db", params.DbPath())
	a.Equal(64, params.Bound())
	a.Equal(16, params.Concurrency())
	a.Equal(".png", params.SourceExt())
	a.Equal(".png", params.ThumbExt())
	a.Equal(90, params.JpegQuality())
	a.True(params.AutoOrient())
	a.True(params.Force())
	a.Equal("DEBUG", params.LogLevel())
	a.Nil(params.Validate())
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero bound", []string{"--bound", "0"}},
		{"negative bound", []string{"--bound", "-5"}},
		{"quality too low", []string{"--quality", "0"}},
		{"quality too high", []string{"--quality", "101"}},
		{"source extension without dot", []string{"--source-ext", "jpg"}},
		{"thumbnail extension without dot", []string{"--thumb-ext", "png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, parse(t, tt.args...).Validate())
		})
	}
}
