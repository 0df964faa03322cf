package common

import (
	"fmt"
	"github.com/spf13/pflag"
	"path/filepath"
	"strings"
)

const (
	DefaultThumbnailDir = "thumbnails"
	DefaultCatalogFile  = "catalog.db"
)

type Params struct {
	rootPath    string
	outputDir   string
	bound       int
	concurrency int
	sourceExt   string
	thumbExt    string
	jpegQuality int
	autoOrient  bool
	dbPath      string
	force       bool
	logLevel    string
}

func NewEmptyParams() *Params {
	return &Params{
		rootPath:    "",
		outputDir:   "",
		bound:       150,
		concurrency: 4,
		sourceExt:   ".jpg",
		thumbExt:    ".jpg",
		jpegQuality: 75,
		autoOrient:  false,
		dbPath:      "",
		force:       false,
		logLevel:    "INFO",
	}
}

// BindPersistentFlags registers the flags shared by every command.
func (s *Params) BindPersistentFlags(flags *pflag.FlagSet) {
	flags.StringVar(&s.logLevel, "log-level", s.logLevel, "Log level: ERROR, WARN, INFO, DEBUG, TRACE")
	flags.IntVar(&s.jpegQuality, "quality", s.jpegQuality, "JPEG quality (1-100) for written images")
	flags.BoolVar(&s.autoOrient, "auto-orient", s.autoOrient, "Rotate JPEG images according to their EXIF orientation when decoding")
}

// BindThumbnailFlags registers the flags of the commands that generate
// thumbnails for a directory.
func (s *Params) BindThumbnailFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&s.outputDir, "out", "o", s.outputDir, "Thumbnail directory (default: <dir>/"+DefaultThumbnailDir+")")
	flags.IntVarP(&s.bound, "bound", "b", s.bound, "Longest side of a thumbnail in pixels")
	flags.IntVarP(&s.concurrency, "concurrency", "c", s.concurrency, "Number of images processed in parallel")
	flags.StringVar(&s.sourceExt, "source-ext", s.sourceExt, "Extension of the source images")
	flags.StringVar(&s.thumbExt, "thumb-ext", s.thumbExt, "Extension of the generated thumbnails")
	flags.StringVar(&s.dbPath, "db", s.dbPath, "Thumbnail catalog (default: <out>/"+DefaultCatalogFile+")")
	flags.BoolVar(&s.force, "force", s.force, "Regenerate thumbnails that are up to date")
}

func (s *Params) SetRootPath(rootPath string) {
	s.rootPath = rootPath
}

func (s *Params) Validate() error {
	if s.bound <= 0 {
		return fmt.Errorf("bound must be positive, got %d", s.bound)
	}
	if s.jpegQuality < 1 || s.jpegQuality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", s.jpegQuality)
	}
	for _, ext := range []string{s.sourceExt, s.thumbExt} {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension '%s' must start with a dot", ext)
		}
	}
	return nil
}

func (s *Params) RootPath() string {
	return s.rootPath
}

func (s *Params) OutputDir() string {
	if s.outputDir == "" {
		return filepath.Join(s.rootPath, DefaultThumbnailDir)
	}
	return s.outputDir
}

func (s *Params) Bound() int {
	return s.bound
}

func (s *Params) Concurrency() int {
	return s.concurrency
}

func (s *Params) SourceExt() string {
	return s.sourceExt
}

func (s *Params) ThumbExt() string {
	return s.thumbExt
}

func (s *Params) JpegQuality() int {
	return s.jpegQuality
}

func (s *Params) AutoOrient() bool {
	return s.autoOrient
}

func (s *Params) DbPath() string {
	if s.dbPath == "" {
		return filepath.Join(s.OutputDir(), DefaultCatalogFile)
	}
	return s.dbPath
}

func (s *Params) Force() bool {
	return s.force
}

func (s *Params) LogLevel() string {
	return s.logLevel
}
