package thumbnail

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend/internal/codec"
)

func writeSourceImage(t *testing.T, c *codec.Codec, dir string, name string, height int, width int, seed int64) {
	random := rand.New(rand.NewSource(seed))
	pix := make([]uint8, height*width*3)
	for i := range pix {
		pix[i] = uint8(random.Intn(256))
	}
	buffer, err := apitype.FromSamples(height, width, 3, pix)
	require.Nil(t, err)
	require.Nil(t, c.Encode(buffer, filepath.Join(dir, name+DefaultExtension)))
}

func TestGenerateThumbnails_PartialFailure(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	inDir := t.TempDir()
	outDir := t.TempDir()
	c := codec.NewCodec(codec.DefaultJpegQuality, false)

	names := []string{"a", "b", "c", "d", "e"}
	for i, name := range names {
		if name == "c" {
			r.Nil(os.WriteFile(filepath.Join(inDir, "c.jpg"), []byte("definitely not a jpeg"), 0644))
			continue
		}
		writeSourceImage(t, c, inDir, name, 400, 200, int64(i))
	}

	var events []*apitype.ProgressEvent
	generator := NewGenerator(c, 4, api.ObserverFunc(func(event *apitype.ProgressEvent) {
		events = append(events, event)
	}))
	result, err := generator.GenerateThumbnails(names, inDir, outDir, 150)
	r.Nil(err)

	a.Equal(5, result.Len())
	a.Equal([]string{"a", "b", "d", "e"}, result.Succeeded())
	a.Equal([]string{"c"}, result.Failed())

	item, ok := result.Get("c")
	r.True(ok)
	a.ErrorIs(item.Err, apitype.ErrDecode)

	_, err = os.Stat(filepath.Join(outDir, "c.jpg"))
	a.True(os.IsNotExist(err))

	for _, name := range []string{"a", "b", "d", "e"} {
		item, _ := result.Get(name)
		a.Equal(apitype.SizeOf(75, 150), item.Size)

		thumbnail, err := c.Decode(filepath.Join(outDir, name+".jpg"))
		r.Nil(err)
		a.Equal(150, thumbnail.Height())
		a.Equal(75, thumbnail.Width())
	}

	// Five decode events followed by four encode events
	r.Len(events, 9)
	for i, event := range events[:5] {
		a.Equal(apitype.DecodeResizePhase, event.Phase)
		a.Equal(i+1, event.Completed)
		a.Equal(5, event.Total)
		if event.Name == "c" {
			a.Equal(apitype.Failed, event.Outcome)
		} else {
			a.Equal(apitype.Succeeded, event.Outcome)
		}
	}
	for i, event := range events[5:] {
		a.Equal(apitype.EncodePhase, event.Phase)
		a.Equal(i+1, event.Completed)
		a.Equal(4, event.Total)
		a.NotEqual("c", event.Name)
	}
}

func TestGenerateThumbnails_SameOutputForAnyConcurrency(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	inDir := t.TempDir()
	c := codec.NewCodec(codec.DefaultJpegQuality, false)

	var names []string
	for i := 0; i < 12; i++ {
		name := "image-" + string(rune('a'+i))
		names = append(names, name)
		writeSourceImage(t, c, inDir, name, 100+i*17, 240-i*9, int64(i))
	}

	outputs := map[int]string{}
	for _, concurrency := range []int{1, 4, 16} {
		outDir := t.TempDir()
		result, err := NewGenerator(c, concurrency, nil).GenerateThumbnails(names, inDir, outDir, 64)
		r.Nil(err)
		a.Len(result.Succeeded(), len(names))
		outputs[concurrency] = outDir
	}

	for _, name := range names {
		expected, err := os.ReadFile(filepath.Join(outputs[1], name+".jpg"))
		r.Nil(err)
		for _, concurrency := range []int{4, 16} {
			actual, err := os.ReadFile(filepath.Join(outputs[concurrency], name+".jpg"))
			r.Nil(err)
			a.Equal(expected, actual, "%s with concurrency %d", name, concurrency)
		}
	}
}

func TestGenerateThumbnails_MissingOutputDirectory(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "missing")
	c := codec.NewCodec(codec.DefaultJpegQuality, false)
	writeSourceImage(t, c, inDir, "a", 20, 30, 1)

	result, err := NewGenerator(c, 2, nil).GenerateThumbnails([]string{"a"}, inDir, outDir, 10)
	r.Nil(err)

	item, ok := result.Get("a")
	r.True(ok)
	a.Equal(apitype.Failed, item.Outcome)
	a.ErrorIs(item.Err, apitype.ErrEncode)

	_, err = os.Stat(outDir)
	a.True(os.IsNotExist(err))
}

func TestGenerate_BatchThatCannotStart(t *testing.T) {
	a := assert.New(t)
	generator := NewGenerator(newStubCodec(), 2, nil)

	_, err := generator.GenerateThumbnails([]string{"a"}, "in", "out", 0)
	a.ErrorIs(err, apitype.ErrInvalidBound)

	_, err = generator.GenerateThumbnails([]string{"a", "b", "a"}, "in", "out", 10)
	a.ErrorIs(err, ErrInvalidBatch)

	_, err = generator.Generate([]*apitype.ThumbnailTask{nil})
	a.ErrorIs(err, ErrInvalidBatch)
}

func TestGenerate_Empty(t *testing.T) {
	result, err := NewGenerator(newStubCodec(), 2, nil).Generate(nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, result.Len())
}

func TestGenerate_FailuresStayWithTheirItem(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	stub := newStubCodec()
	generator := NewGenerator(stub, 3, nil)
	names := []string{"ok", "undecodable", "panics", "unencodable", "tiny", "fine"}

	result, err := generator.GenerateThumbnails(names, "in", "out", 20)
	r.Nil(err)

	a.Equal([]string{"fine", "ok"}, result.Succeeded())
	a.Equal([]string{"panics", "tiny", "undecodable", "unencodable"}, result.Failed())

	errs := result.Errors()
	a.ErrorIs(errs["undecodable"], apitype.ErrDecode)
	a.ErrorIs(errs["unencodable"], apitype.ErrEncode)
	a.ErrorIs(errs["tiny"], apitype.ErrInvalidSize)
	a.Contains(errs["panics"].Error(), "panicked")

	// Only images that were decoded and resized get encoded
	a.ElementsMatch([]string{"ok", "unencodable", "fine"}, stub.encodedNames())

	item, _ := result.Get("ok")
	a.Equal(apitype.SizeOf(20, 10), item.Size)
}

func TestNewGenerator_DefaultConcurrency(t *testing.T) {
	assert.Equal(t, DefaultConcurrency, NewGenerator(newStubCodec(), 0, nil).Concurrency())
	assert.Equal(t, 7, NewGenerator(newStubCodec(), 7, nil).Concurrency())
}

func TestGenerator_SetExtensions(t *testing.T) {
	a := assert.New(t)

	stub := newStubCodec()
	generator := NewGenerator(stub, 1, nil)
	generator.SetExtensions(".png", ".webp")

	result, err := generator.GenerateThumbnails([]string{"ok"}, "in", "out", 10)
	a.Nil(err)
	a.Equal([]string{"ok"}, result.Succeeded())
	a.Equal([]string{filepath.Join("out", "ok.webp")}, stub.encodedPaths())
}

// stubCodec decides what happens to an image by its file name.
type stubCodec struct {
	mux     sync.Mutex
	encoded []string

	api.Codec
}

func newStubCodec() *stubCodec {
	return &stubCodec{}
}

func (s *stubCodec) Decode(path string) (*apitype.PixelBuffer, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch name {
	case "undecodable":
		return nil, errors.New("broken file")
	case "panics":
		panic("decoder crashed")
	case "tiny":
		// Fits to 20x0
		return apitype.NewPixelBuffer(apitype.Uint8, 1, 100, 3)
	}
	return apitype.NewPixelBuffer(apitype.Uint8, 40, 80, 3)
}

func (s *stubCodec) Encode(buffer *apitype.PixelBuffer, path string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.encoded = append(s.encoded, path)
	if strings.HasPrefix(filepath.Base(path), "unencodable") {
		return errors.New("disk full")
	}
	return nil
}

func (s *stubCodec) encodedPaths() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string(nil), s.encoded...)
}

func (s *stubCodec) encodedNames() []string {
	var names []string
	for _, path := range s.encodedPaths() {
		names = append(names, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	return names
}
