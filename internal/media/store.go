// Package media stores uploaded post images on disk.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register decoders for upload sniffing
	_ "image/jpeg" //
	_ "image/png"  //
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"yatube/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	postsDir = "posts"

	MaxUploadBytes = 10 * 1024 * 1024

	previewMaxSize = 1080
	previewQuality = 70
)

// Store writes post images under a media root and hands back the relative
// paths that get persisted on the post record.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Save validates and writes an uploaded image, returning its path relative
// to the media root ("posts/<file>"). A name collision gets a short random
// suffix instead of overwriting the existing file. Each upload also gets a
// WebP preview written next to it.
func (s *Store) Save(filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > MaxUploadBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadBytes/(1024*1024)))
	}
	if !isAllowedImageMIME(http.DetectContentType(content)) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	name := sanitizeFilename(filename)
	dir := filepath.Join(s.root, postsDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", models.NewInternalError(err)
	}

	if _, statErr := os.Stat(filepath.Join(dir, name)); statErr == nil {
		name = suffixFilename(name)
	}

	if err := os.WriteFile(filepath.Join(dir, name), content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}

	if err := s.writePreview(dir, name, decoded); err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return "", err
	}

	return filepath.ToSlash(filepath.Join(postsDir, name)), nil
}

// Resolve maps a stored relative path back to an absolute one, rejecting
// anything that would escape the media root.
func (s *Store) Resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", models.NewValidationError("Invalid media path")
	}
	full := filepath.Join(s.root, clean)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Media", rel)
		}
		return "", models.NewInternalError(err)
	}
	return full, nil
}

// PreviewPath returns the relative path of the WebP preview for a stored image.
func PreviewPath(rel string) string {
	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext) + ".webp"
}

func (s *Store) writePreview(dir, name string, decoded image.Image) error {
	preview := resizeToFit(decoded, previewMaxSize, previewMaxSize)
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, preview, &webp.Options{Quality: previewQuality}); err != nil {
		return models.NewInternalError(err)
	}
	previewName := strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
	if err := os.WriteFile(filepath.Join(dir, previewName), buf.Bytes(), 0o600); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filepath.Clean(filepath.FromSlash(filename)))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == ".." || name == "" || strings.HasPrefix(name, ".") {
		name = "upload" + filepath.Ext(name)
	}
	return name
}

// suffixFilename inserts a short random fragment before the extension,
// mirroring how duplicate upload names stay distinct.
func suffixFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext)
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
