package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

// pdfToOCR rasterizes every page to a grayscale image and recognizes
// each one in turn. Page rasters are scoped to a temp dir that is
// removed on success and failure alike.
func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "ra-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func(dir string) {
		if rerr := os.RemoveAll(dir); rerr != nil {
			e.logger.Warn("ocr.tmpdir.remove_failed", "dir", dir, "error", rerr)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -gray -png <in.pdf> <tmp/page>
	// Grayscale rasters; tesseract applies its own automatic (Otsu)
	// binarization and denoising on top.
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-gray", "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, rerr := e.tesseractOCR(ctx, img)
		warns = append(warns, w...)
		if rerr != nil {
			// Recognition failure on one page degrades to a warning;
			// the page raster is still cleaned up with the temp dir.
			warns = append(warns, rerr.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}
	pages = len(matches)
	return b.String(), pages, warns, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, imgPath string) (string, []string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}
