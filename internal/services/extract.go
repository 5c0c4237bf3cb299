package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/hpfxd/bibliothek/internal/models"
)

// ExtractArchive extracts every regular-file entry of the zip at
// archivePath into destRoot, streaming each entry through a SHA-256
// digest while writing it. Directory entries are skipped. Entry names
// that would resolve outside destRoot (zip slip) fail the whole
// extraction. The caller must have created destRoot already.
func ExtractArchive(archivePath, destRoot string) ([]models.Download, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	var downloads []models.Download
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		download, err := extractEntry(entry, destRoot)
		if err != nil {
			return nil, fmt.Errorf("extract %q: %w", entry.Name, err)
		}
		downloads = append(downloads, download)
	}
	return downloads, nil
}

func extractEntry(entry *zip.File, destRoot string) (models.Download, error) {
	target := filepath.Join(destRoot, filepath.FromSlash(entry.Name))

	// Entry names may carry ".." segments; the cleaned target must stay
	// under destRoot or the entry is rejected outright.
	prefix := filepath.Clean(destRoot) + string(os.PathSeparator)
	if !strings.HasPrefix(filepath.Clean(target)+string(os.PathSeparator), prefix) {
		return models.Download{}, fmt.Errorf("entry escapes destination directory")
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return models.Download{}, err
	}

	src, err := entry.Open()
	if err != nil {
		return models.Download{}, err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return models.Download{}, err
	}

	hasher := sha256.New()
	_, err = io.Copy(io.MultiWriter(dst, hasher), src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return models.Download{}, err
	}

	return models.Download{
		Name:   entry.Name,
		Sha256: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}
