package id

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IMDb stores one master image per title and encodes resizing
// instructions in the filename: tokens such as _SX300 (scale to width),
// _UY450 (pad to height), _CR0,0,300,450 (crop rectangle) and the _V1
// revision marker sit between the image hash and the extension.

const DefaultThumbSize = 780

var (
	thumbTail = regexp.MustCompile(`\._V1[^/]*?(\.(?:jpg|jpeg|png|gif|webp))$`)
	thumbExt  = regexp.MustCompile(`(\.(?:jpg|jpeg|png|gif|webp))$`)
	cropToken = regexp.MustCompile(`_CR(\d+),(\d+),(\d+),(\d+)`)
	sizeToken = regexp.MustCompile(`_(?:SX|UX)(\d+)`)
)

// Thumb rewrites an IMDb image link to the requested width. The rewrite
// is idempotent: transforming an already-transformed link with the same
// size returns it unchanged. When crop is true an existing crop
// rectangle is preserved, its coordinates scaled proportionally to the
// new width.
func Thumb(raw string, size int, crop bool) string {
	if raw == "" || !strings.Contains(raw, "media-amazon") && !strings.Contains(raw, "media-imdb") {
		return raw
	}
	if size <= 0 {
		size = DefaultThumbSize
	}

	tail := thumbTail.FindStringSubmatchIndex(raw)
	if tail == nil {
		// No modifier block at all; insert one before the extension.
		ext := thumbExt.FindString(raw)
		if ext == "" {
			return raw
		}
		head := strings.TrimSuffix(raw, ext)
		return fmt.Sprintf("%s._V1_UX%d_%s", head, size, ext)
	}

	modifiers := raw[tail[0]:tail[1]]
	head := raw[:tail[0]]
	ext := raw[tail[2]:tail[3]]

	if crop {
		if cr := cropToken.FindStringSubmatch(modifiers); cr != nil {
			width := 0
			if sx := sizeToken.FindStringSubmatch(modifiers); sx != nil {
				width, _ = strconv.Atoi(sx[1])
			}
			if width == 0 {
				width, _ = strconv.Atoi(cr[3])
			}
			if width > 0 {
				scale := float64(size) / float64(width)
				x := scaleCoord(cr[1], scale)
				y := scaleCoord(cr[2], scale)
				w := scaleCoord(cr[3], scale)
				h := scaleCoord(cr[4], scale)
				return fmt.Sprintf("%s._V1_UX%d_CR%d,%d,%d,%d_%s", head, size, x, y, w, h, ext)
			}
		}
	}

	return fmt.Sprintf("%s._V1_UX%d_%s", head, size, ext)
}

func scaleCoord(s string, scale float64) int {
	v, _ := strconv.Atoi(s)
	return int(float64(v)*scale + 0.5)
}
