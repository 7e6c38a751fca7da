package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Sheet lays frames out left to right, top to bottom, columns per row.
// Every cell has the size of the first frame. A non-positive columns puts
// all frames on one row.
func Sheet(frames []image.Image, columns int) *image.RGBA {
	if len(frames) == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	if columns <= 0 || columns > len(frames) {
		columns = len(frames)
	}
	rows := (len(frames) + columns - 1) / columns
	cell := frames[0].Bounds().Size()
	sheet := image.NewRGBA(image.Rect(0, 0, cell.X*columns, cell.Y*rows))
	for i, f := range frames {
		at := image.Pt((i%columns)*cell.X, (i/columns)*cell.Y)
		sr := f.Bounds()
		if sr.Dx() > cell.X || sr.Dy() > cell.Y {
			sr.Max = sr.Min.Add(cell)
		}
		draw.Copy(sheet, at, f, sr, draw.Src, nil)
	}
	return sheet
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG writes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
