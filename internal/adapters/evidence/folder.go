package evidence

import (
	"context"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/obs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// IsImageName reports whether name has one of the accepted image extensions.
func IsImageName(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// LoadFolder reads every image file directly inside dir, sorted by file name.
// Subdirectories and other file types are ignored.
func LoadFolder(ctx context.Context, dir string) (_ []domain.EvidenceSource, err error) {
	defer obs.Time(ctx, "evidence.LoadFolder")(&err)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load evidence folder %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImageName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]domain.EvidenceSource, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load evidence folder %q: %w", dir, err)
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("load evidence folder: read %q: %w", name, err)
		}
		out = append(out, domain.EvidenceSource{Name: name, Data: data})
	}

	return out, nil
}
