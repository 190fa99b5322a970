package storage

import (
	"context"
	"os"
)

type FileCatalogState struct {
	FilePath string
}

func NewFileCatalogState(filePath string) *FileCatalogState {
	return &FileCatalogState{FilePath: filePath}
}

func (c *FileCatalogState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(c.FilePath)
}
