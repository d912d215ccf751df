package democore

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"dsfront/emu/log"
)

// saveFile keeps the canvas between sessions, as a PNG image. The file is
// held open for the whole session.
type saveFile struct {
	path string
	f    *os.File
}

// open opens the save file, creating it if needed, and loads its content into
// canvas. An empty file leaves canvas untouched.
func (s *saveFile) open(canvas *image.RGBA) error {
	if s.path == "" {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("open save file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("open save file: %w", err)
	}
	if fi.Size() == 0 {
		// New save.
		s.f = f
		return nil
	}

	img, err := png.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("load save file %s: %w", s.path, err)
	}
	draw.Copy(canvas, image.Point{}, img, img.Bounds().Intersect(canvas.Bounds()), draw.Src, nil)
	log.ModEmu.DebugZ("save file loaded").String("path", s.path).End()

	s.f = f
	return nil
}

// close writes canvas into the save file and closes it.
func (s *saveFile) close(canvas *image.RGBA) error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil

	if err := writePNG(f, canvas); err != nil {
		f.Close()
		return fmt.Errorf("write save file %s: %w", s.path, err)
	}
	return f.Close()
}

func writePNG(f *os.File, img image.Image) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	return png.Encode(f, img)
}
