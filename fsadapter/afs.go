package fsadapter

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// afsAdapter implements FileSystem on top of github.com/viant/afs,
// grounded directly on analyzer/package.go's a.fs.Walk/
// a.fs.DownloadWithURL and inspector/repository/detector.go's
// afs.New()+fs.DownloadWithURL usage.
type afsAdapter struct {
	service afs.Service
}

// NewAFS returns a FileSystem backed by a fresh afs.Service, the same
// construction the teacher uses in NewAnalyzer (analyzer/analyzer.go).
func NewAFS() FileSystem {
	return &afsAdapter{service: afs.New()}
}

// NewAFSWithService wraps a caller-provided afs.Service, e.g. one
// configured with non-default storage schemes or credentials.
func NewAFSWithService(service afs.Service) FileSystem {
	return &afsAdapter{service: service}
}

func (a *afsAdapter) ListDirectory(ctx context.Context, path string) ([]string, error) {
	objects, err := a.service.List(ctx, path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		name := obj.Name()
		if name == "." || name == ".." {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (a *afsAdapter) Stat(ctx context.Context, path string) (Stat, error) {
	obj, err := a.service.Object(ctx, path)
	if err != nil {
		return Stat{}, err
	}
	return statFromObject(obj), nil
}

func (a *afsAdapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return a.service.DownloadWithURL(ctx, path)
}

func statFromObject(obj storage.Object) Stat {
	modified := obj.ModTime()
	return Stat{
		Size:        obj.Size(),
		Created:     modified,
		Modified:    modified,
		IsDirectory: obj.IsDir(),
	}
}
