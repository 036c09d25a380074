// Package bitmap writes rendered textures as Windows BMP files.
package bitmap

import (
	"bufio"
	"errors"
	"image"
	"os"

	"golang.org/x/image/bmp"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// Write encodes img to path. Opaque images are written as 24-bit rows and
// images with any transparency as 32-bit rows. A failed encode removes the
// partial file.
func Write(img image.Image, path string) (err error) {
	if img == nil || img.Bounds().Empty() {
		return errs.Invalid(errs.StageWrite, "cannot write an empty image")
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.IO(errs.StageWrite, "create "+path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if encErr := bmp.Encode(w, img); encErr != nil {
		_ = f.Close()
		return errs.IO(errs.StageWrite, "encode "+path, encErr)
	}
	if flushErr := w.Flush(); flushErr != nil {
		_ = f.Close()
		return errs.IO(errs.StageWrite, "flush "+path, flushErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		return errs.IO(errs.StageWrite, "close "+path, closeErr)
	}
	return nil
}

// Read decodes the BMP file at path.
func Read(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO(errs.StageWrite, "open "+path, err)
	}
	defer f.Close()

	img, err := bmp.Decode(bufio.NewReader(f))
	if err != nil {
		if errors.Is(err, bmp.ErrUnsupported) {
			return nil, errs.Invalid(errs.StageWrite, "%s: %v", path, err)
		}
		return nil, errs.IO(errs.StageWrite, "decode "+path, err)
	}
	return img, nil
}
