// Package dumps lists the downloadable database dump files published next
// to the API. The listing is a plain directory scan, unrelated to the query
// surface over the dump itself.
package dumps

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// File describes one downloadable dump file.
type File struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	Href      string    `json:"href"`
}

// ServiceConfig collects the dependencies of the dump listing service.
type ServiceConfig struct {
	Dir        string
	HrefPrefix string
	Logger     *zap.Logger
}

// Service produces dump file listings from a local directory.
type Service struct {
	dir        string
	hrefPrefix string
	logger     *zap.Logger
}

// NewService constructs a Service. An empty directory path is allowed and
// yields empty listings.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		dir:        cfg.Dir,
		hrefPrefix: strings.TrimRight(cfg.HrefPrefix, "/"),
		logger:     logger,
	}
}

// List returns the dump files in the configured directory, newest first.
// A missing or empty directory yields an empty list, not an error.
func (s *Service) List() ([]File, error) {
	files := make([]File, 0)
	if s.dir == "" {
		return files, nil
	}

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		s.logger.Debug("dump directory absent", zap.String("dir", s.dir))
		return files, nil
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("skipping unreadable dump file",
				zap.String("name", entry.Name()), zap.Error(err))
			continue
		}
		files = append(files, File{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
			Href:      s.hrefPrefix + "/" + filepath.ToSlash(entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}
