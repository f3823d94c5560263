// Package assets loads images, sounds and fonts from the assets directory.
// Everything degrades gracefully: a missing file logs once and returns nil,
// and the game keeps running with placeholder visuals and no sound.
package assets

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"image"
	_ "image/png"
)

var (
	root         = "assets"
	audioContext *audio.Context

	imageCache = map[string]*ebiten.Image{}
	soundCache = map[string][]byte{}
	missing    = map[string]bool{}

	fontSource *text.GoTextFaceSource
	faceCache  = map[float64]text.Face{}
)

// SetRoot points the loader at a different assets directory. Call before any
// loads.
func SetRoot(dir string) {
	root = dir
}

// Context returns the shared audio context, creating it on first use. Lazy
// creation keeps the audio device untouched until something actually plays.
func Context() *audio.Context {
	if audioContext == nil {
		audioContext = audio.NewContext(44100)
	}
	return audioContext
}

// Image returns the cached image at the assets-relative path, or nil if the
// file is missing or undecodable.
func Image(path string) *ebiten.Image {
	clean := cleanPath(path)
	if img, ok := imageCache[clean]; ok {
		return img
	}
	if missing[clean] {
		return nil
	}

	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(clean)))
	if err != nil {
		warnOnce(clean, err)
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		warnOnce(clean, fmt.Errorf("decode image: %w", err))
		return nil
	}

	eimg := ebiten.NewImageFromImage(img)
	imageCache[clean] = eimg
	return eimg
}

// SoundPlayer creates a fresh player for a sound effect, or nil if the asset
// cannot be loaded. Each call gets its own player so overlapping effects work.
func SoundPlayer(path string) *audio.Player {
	stream := decodeAudio(path)
	if stream == nil {
		return nil
	}
	p, err := Context().NewPlayer(stream)
	if err != nil {
		warnOnce(cleanPath(path), err)
		return nil
	}
	return p
}

// MusicPlayer creates a looping player for background music, or nil if the
// asset cannot be loaded.
func MusicPlayer(path string) *audio.Player {
	stream := decodeAudio(path)
	if stream == nil {
		return nil
	}
	loop := audio.NewInfiniteLoop(stream, stream.Length())
	p, err := Context().NewPlayer(loop)
	if err != nil {
		warnOnce(cleanPath(path), err)
		return nil
	}
	return p
}

type audioStream interface {
	Read([]byte) (int, error)
	Seek(int64, int) (int64, error)
	Length() int64
}

func decodeAudio(path string) audioStream {
	clean := cleanPath(path)
	b, ok := soundCache[clean]
	if !ok {
		if missing[clean] {
			return nil
		}
		var err error
		b, err = os.ReadFile(filepath.Join(root, filepath.FromSlash(clean)))
		if err != nil {
			warnOnce(clean, err)
			return nil
		}
		soundCache[clean] = b
	}

	reader := bytes.NewReader(b)
	switch {
	case strings.HasSuffix(strings.ToLower(clean), ".wav"):
		stream, err := wav.DecodeWithSampleRate(Context().SampleRate(), reader)
		if err != nil {
			warnOnce(clean, fmt.Errorf("decode wav: %w", err))
			return nil
		}
		return stream
	case strings.HasSuffix(strings.ToLower(clean), ".mp3"):
		stream, err := mp3.DecodeWithSampleRate(Context().SampleRate(), reader)
		if err != nil {
			warnOnce(clean, fmt.Errorf("decode mp3: %w", err))
			return nil
		}
		return stream
	}
	warnOnce(clean, fmt.Errorf("unsupported audio format"))
	return nil
}

// Font returns a text face at the given size. Uses the bundled Go Regular
// face; falls back to the fixed bitmap face if that fails to parse.
func Font(size float64) text.Face {
	if f, ok := faceCache[size]; ok {
		return f
	}

	if fontSource == nil {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("assets: parse bundled font: %v", err)
			f := text.NewGoXFace(basicfont.Face7x13)
			faceCache[size] = f
			return f
		}
		fontSource = s
	}

	f := &text.GoTextFace{Source: fontSource, Size: size}
	faceCache[size] = f
	return f
}

func warnOnce(clean string, err error) {
	if missing[clean] {
		return
	}
	missing[clean] = true
	log.Printf("assets: %s: %v", clean, err)
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "assets/")
}
