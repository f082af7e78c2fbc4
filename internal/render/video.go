package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"firespread/internal/sims/wildfire"
)

// WriteVideo encodes the sequence as a Motion-JPEG AVI at fps frames per
// second.
func WriteVideo(path string, seq *wildfire.Sequence, scale, fps int) error {
	if seq.Len() == 0 {
		return fmt.Errorf("writing video: empty sequence")
	}
	if scale < 1 {
		scale = 1
	}
	if fps < 1 {
		fps = 1
	}
	first, err := seq.At(0)
	if err != nil {
		return err
	}
	size := first.Size()
	aw, err := mjpeg.New(path, int32(size.W*scale), int32(size.H*scale), int32(fps))
	if err != nil {
		return fmt.Errorf("creating video writer: %w", err)
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 90}
	for i, f := range seq.All() {
		buf.Reset()
		if err := jpeg.Encode(&buf, FrameImage(f, scale), opts); err != nil {
			aw.Close()
			return fmt.Errorf("encoding frame %d: %w", i, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return fmt.Errorf("adding frame %d: %w", i, err)
		}
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("closing video: %w", err)
	}
	return nil
}
