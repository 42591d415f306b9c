package index

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/fulmenhq/folio/pkg/logger"
	_ "golang.org/x/image/webp"
)

// ImageSize reads the pixel dimensions from the image header. Videos, PDFs
// and unknown formats report ok=false.
func ImageSize(path string) (width, height int, ok bool) {
	f, err := os.Open(path) // #nosec G304 -- path is a listed asset of a project folder
	if err != nil {
		return 0, 0, false
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		logger.Debug("No dimensions for asset", logger.String("path", path), logger.Err(err))
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
