// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package resource

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// DecodeImage reads an image from path, dispatching on its extension.
// BMP and PNG decode through the standard library and golang.org/x/image;
// TGA is decoded by hand since neither provides it.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("resource: open image %s: %w", path, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".tga":
		return decodeTGA(r)
	}
	return nil, fmt.Errorf("resource: unsupported image format %s", path)
}

// tgaHeader is the 18-byte fixed header common to every TARGA file.
type tgaHeader struct {
	IDLength      uint8
	ColorMapType  uint8
	ImageType     uint8
	CMapStart     uint16
	CMapLength    uint16
	CMapDepth     uint8
	XOrigin       uint16
	YOrigin       uint16
	Width         uint16
	Height        uint16
	PixelDepth    uint8
	ImageDescrip  uint8
}

const (
	tgaUncompressedRGB = 2
	tgaRunLengthRGB    = 10
)

// decodeTGA supports the common uncompressed and run-length-encoded
// 24/32-bit true color variants, which cover every TGA asset an engine
// content pipeline is likely to emit.
func decodeTGA(r io.Reader) (image.Image, error) {
	var hdr tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("resource: tga header: %w", err)
	}
	if hdr.ImageType != tgaUncompressedRGB && hdr.ImageType != tgaRunLengthRGB {
		return nil, fmt.Errorf("resource: unsupported tga image type %d", hdr.ImageType)
	}
	if hdr.IDLength > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(hdr.IDLength)); err != nil {
			return nil, err
		}
	}
	bytesPerPixel := int(hdr.PixelDepth) / 8
	if bytesPerPixel != 3 && bytesPerPixel != 4 {
		return nil, fmt.Errorf("resource: unsupported tga pixel depth %d", hdr.PixelDepth)
	}

	width, height := int(hdr.Width), int(hdr.Height)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	pixels := make([]byte, 0, width*height*bytesPerPixel)
	if hdr.ImageType == tgaUncompressedRGB {
		raw := make([]byte, width*height*bytesPerPixel)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("resource: tga pixel data: %w", err)
		}
		pixels = raw
	} else {
		var err error
		pixels, err = decodeTGARLE(r, width*height, bytesPerPixel)
		if err != nil {
			return nil, err
		}
	}

	// TGA rows are stored bottom-to-top unless bit 5 of the image
	// descriptor flips the origin to the top.
	topDown := hdr.ImageDescrip&0x20 != 0
	for y := 0; y < height; y++ {
		row := y
		if !topDown {
			row = height - 1 - y
		}
		for x := 0; x < width; x++ {
			o := (row*width + x) * bytesPerPixel
			b, g, rr := pixels[o], pixels[o+1], pixels[o+2]
			a := byte(255)
			if bytesPerPixel == 4 {
				a = pixels[o+3]
			}
			img.SetNRGBA(x, y, color.NRGBA{R: rr, G: g, B: b, A: a})
		}
	}
	return img, nil
}

// decodeTGARLE unpacks run-length-encoded TGA pixel packets: a header
// byte whose top bit marks a run and whose low 7 bits give count-1.
func decodeTGARLE(r io.Reader, pixelCount, bytesPerPixel int) ([]byte, error) {
	out := make([]byte, 0, pixelCount*bytesPerPixel)
	header := make([]byte, 1)
	pixel := make([]byte, bytesPerPixel)
	for len(out) < pixelCount*bytesPerPixel {
		if _, err := io.ReadFull(r, header); err != nil {
			return nil, fmt.Errorf("resource: tga rle packet: %w", err)
		}
		count := int(header[0]&0x7f) + 1
		if header[0]&0x80 != 0 {
			if _, err := io.ReadFull(r, pixel); err != nil {
				return nil, fmt.Errorf("resource: tga rle pixel: %w", err)
			}
			for i := 0; i < count; i++ {
				out = append(out, pixel...)
			}
		} else {
			raw := make([]byte, count*bytesPerPixel)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("resource: tga rle run: %w", err)
			}
			out = append(out, raw...)
		}
	}
	return out, nil
}

// imageLoader implements Loader for KindTexture, decoding image files
// from a base directory and handing the decoded image.Image off to the
// renderer-specific texture upload (done by the caller, not here).
type imageLoader struct {
	baseDir string
}

// NewImageLoader creates a Loader that resolves texture names relative
// to baseDir.
func NewImageLoader(baseDir string) Loader {
	return &imageLoader{baseDir: baseDir}
}

func (l *imageLoader) Load(name string) (any, error) {
	return DecodeImage(filepath.Join(l.baseDir, name))
}

func (l *imageLoader) Release(payload any) {}
