package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for image extensions SaveImage cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SaveImage encodes img to path. The format follows the extension:
// .png, .bmp or .webp (lossless).
func SaveImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".bmp", ".webp":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".png":
		err = png.Encode(file, img)
	case ".bmp":
		err = bmp.Encode(file, img)
	case ".webp":
		err = nativewebp.Encode(file, img, nil)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ext[1:], err)
	}
	return nil
}

// ScreenshotCapture writes timestamped captures to a directory.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	ext       string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler. format is
// one of "png", "bmp" or "webp"; empty means png.
func NewScreenshotCapture(outputDir, prefix, format string) *ScreenshotCapture {
	if format == "" {
		format = "png"
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		ext:       "." + strings.TrimPrefix(strings.ToLower(format), "."),
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// CaptureFromPixels captures a screenshot from raw RGBA pixel data with
// width*height*4 bytes. Rows are flipped when bottomUp is set.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int, bottomUp bool) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := y
		if bottomUp {
			srcY = height - 1 - y
		}
		srcOffset := srcY * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.CaptureFromImage(img)
}

// CaptureFromImage captures a screenshot from an existing image.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	if err := SaveImage(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s", sc.prefix, timestamp, sc.ext)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
