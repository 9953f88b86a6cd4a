// Command mktile converts PNG images to and from raw block-linear frames.
package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"strings"

	"nxui/blocklinear"
	"nxui/hal"
)

// File layout: header, then the tiled pixel data.
const magic = "NXBL"

type header struct {
	Magic           [4]byte
	Width           uint32
	Height          uint32
	BlockHeightLog2 uint32
}

func main() {
	var (
		inPath  = flag.String("in", "", "Input file (.png for encode, .bl for decode).")
		outPath = flag.String("out", "", "Output file (.bl for encode, .png for decode).")
		mode    = flag.String("mode", "encode", "encode|decode.")
		log2    = flag.Uint("block-height-log2", blocklinear.DefaultBlockHeightLog2, "Block height as log2 of GOBs (0-5, encode mode only).")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fatalf("usage: mktile -mode encode -in in.png -out out.bl [-block-height-log2 4]\n       mktile -mode decode -in in.bl -out out.png")
	}

	switch strings.ToLower(*mode) {
	case "encode":
		if err := encodePNG(*inPath, *outPath, uint32(*log2)); err != nil {
			fatalf("encode: %v", err)
		}
	case "decode":
		if err := decodeToPNG(*inPath, *outPath); err != nil {
			fatalf("decode: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func encodePNG(inPath, outPath string, log2 uint32) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	img, err := png.Decode(in)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err := writeTiled(w, img, log2); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func decodeToPNG(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	img, err := readTiled(bufio.NewReader(in))
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("png: %w", err)
	}
	return out.Close()
}

// writeTiled writes img as a header plus block-linear RGBA8 data.
func writeTiled(w io.Writer, img image.Image, log2 uint32) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("empty image")
	}
	if log2 > blocklinear.MaxBlockHeightLog2 {
		return fmt.Errorf("%w: %d", blocklinear.ErrBadBlockHeight, log2)
	}
	width, height := uint32(b.Dx()), uint32(b.Dy())
	stride := blocklinear.AlignStride(width * uint32(hal.ColorFormatRGBA8888.BytesPerPixel()))

	// Unpremultiplied RGBA in a stride-aligned buffer.
	rgba := &image.NRGBA{
		Pix:    make([]byte, blocklinear.Size(stride, height, log2)),
		Stride: int(stride),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)

	tiled := make([]byte, len(rgba.Pix))
	if err := blocklinear.Encode(tiled, rgba.Pix, stride, height, log2); err != nil {
		return err
	}
	h := header{Width: width, Height: height, BlockHeightLog2: log2}
	copy(h.Magic[:], magic)
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	_, err := w.Write(tiled)
	return err
}

// readTiled reads a file written by writeTiled.
func readTiled(r io.Reader) (*image.NRGBA, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if string(h.Magic[:]) != magic {
		return nil, fmt.Errorf("bad magic %q", h.Magic[:])
	}
	if h.Width == 0 || h.Height == 0 || h.Width > 1<<14 || h.Height > 1<<14 {
		return nil, fmt.Errorf("bad size %dx%d", h.Width, h.Height)
	}
	if h.BlockHeightLog2 > blocklinear.MaxBlockHeightLog2 {
		return nil, fmt.Errorf("%w: %d", blocklinear.ErrBadBlockHeight, h.BlockHeightLog2)
	}
	stride := blocklinear.AlignStride(h.Width * uint32(hal.ColorFormatRGBA8888.BytesPerPixel()))
	f := hal.Frame{
		Data:            make([]byte, blocklinear.Size(stride, h.Height, h.BlockHeightLog2)),
		Width:           h.Width,
		Height:          h.Height,
		Stride:          stride,
		BlockHeightLog2: h.BlockHeightLog2,
		Format:          hal.ColorFormatRGBA8888,
	}
	if _, err := io.ReadFull(r, f.Data); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	lin, err := f.Linear(nil)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    lin,
		Stride: int(stride),
		Rect:   image.Rect(0, 0, int(h.Width), int(h.Height)),
	}, nil
}
