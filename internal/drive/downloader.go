package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Source is the subset of Service the downloader uses.
type Source interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	GetFile(ctx context.Context, fileID string) (*File, error)
	FindFolderByPath(ctx context.Context, path string) (string, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
}

// Downloader fetches planner workbooks from Google Drive.
type Downloader struct {
	service Source
}

// NewDownloader creates a new Downloader.
func NewDownloader(s Source) *Downloader {
	return &Downloader{service: s}
}

// FetchWorkbook downloads the workbook named by ref into dir and returns the
// local path. ref is either "id:<fileID>" or a slash-separated path such as
// "Planning/2026/1.xlsx" resolved from the Drive root.
func (d *Downloader) FetchWorkbook(ctx context.Context, ref, dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	file, err := d.resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	if !isWorkbook(file.Name) {
		return "", fmt.Errorf("drive file %s (%s) is not an xlsx workbook", file.Name, file.ID)
	}

	localPath := filepath.Join(dir, filepath.Base(file.Name))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	if err := d.service.DownloadFile(ctx, file.ID, out); err != nil {
		out.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("failed to download %s: %w", file.Name, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	log.Info().Str("file", file.Name).Str("id", file.ID).Str("path", localPath).Msg("workbook downloaded from drive")
	return localPath, nil
}

func (d *Downloader) resolve(ctx context.Context, ref string) (*File, error) {
	if id, ok := strings.CutPrefix(ref, "id:"); ok {
		return d.service.GetFile(ctx, id)
	}

	folder, name := splitRef(ref)
	folderID, err := d.service.FindFolderByPath(ctx, folder)
	if err != nil {
		return nil, err
	}
	files, err := d.service.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("file %q not found in drive folder %q", name, folder)
}

// splitRef splits "a/b/c.xlsx" into ("a/b", "c.xlsx").
func splitRef(ref string) (folder, name string) {
	ref = strings.Trim(ref, "/")
	folder, name = path.Split(ref)
	return strings.TrimSuffix(folder, "/"), name
}

func isWorkbook(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}
