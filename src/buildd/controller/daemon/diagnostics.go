package daemon

import (
	"context"
	"encoding/hex"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/procstats"
	"github.com/zeebo/blake3"
	"google.golang.org/grpc/codes"
)

const (
	_allocativeHeap   = "heap.pprof"
	_allocativeAllocs = "allocs.pprof"
	_allocativeReport = "allocator.txt"
)

// resolvePath resolves a diagnostic output path against the daemon's working directory.
func (c *controller) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := c.fs.Getwd()
	if err != nil {
		return "", &errors.ResourceError{Op: "resolving working directory", Err: err}
	}
	return filepath.Join(wd, path), nil
}

// writeProfile writes a pprof profile to path and returns the size of the file.
func (c *controller) writeProfile(name, path string) (int64, error) {
	f, err := c.fs.Create(path)
	if err != nil {
		return 0, err
	}
	if err := procstats.WriteProfile(name, f); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	info, err := c.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (c *controller) HeapDump(_ context.Context, req *api.HeapDumpRequest) (*api.HeapDumpResponse, error) {
	if req.Path == "" {
		return nil, errors.Protocolf(codes.InvalidArgument, "heap dump path is required")
	}
	path, err := c.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	n, err := c.writeProfile("heap", path)
	if err != nil {
		return nil, &errors.ResourceError{Op: "writing heap profile", Path: path, Err: err}
	}
	c.logger.Infow("heap profile written", "path", path, "bytes", n)
	return &api.HeapDumpResponse{Path: path, Bytes: uint64(n)}, nil
}

func (c *controller) AllocatorStats(_ context.Context, req *api.AllocatorStatsRequest) (*api.AllocatorStatsResponse, error) {
	report := procstats.AllocatorReport(req.Options)
	resp := &api.AllocatorStatsResponse{Response: report}
	if req.Path == "" {
		return resp, nil
	}

	path, err := c.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	if err := c.fs.WriteFile(path, []byte(report)); err != nil {
		return nil, &errors.ResourceError{Op: "writing allocator stats", Path: path, Err: err}
	}
	resp.Path = path
	return resp, nil
}

// DiceDump writes the engine's graph dump, zstd-compressed when requested, and reports the
// blake3 digest of the bytes written.
func (c *controller) DiceDump(ctx context.Context, req *api.DiceDumpRequest) (*api.DiceDumpResponse, error) {
	if req.Path == "" {
		return nil, errors.Protocolf(codes.InvalidArgument, "graph dump path is required")
	}
	path, err := c.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}

	data, err := c.engine.GraphDump(ctx, req.Format.String())
	if err != nil {
		return nil, err
	}
	if req.Compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := c.fs.WriteFile(path, data); err != nil {
		return nil, &errors.ResourceError{Op: "writing graph dump", Path: path, Err: err}
	}
	sum := blake3.Sum256(data)
	return &api.DiceDumpResponse{
		Path:       path,
		Bytes:      uint64(len(data)),
		Digest:     hex.EncodeToString(sum[:]),
		Compressed: req.Compress,
	}, nil
}

// Allocative writes a memory attribution report into an absolute output directory.
func (c *controller) Allocative(_ context.Context, req *api.AllocativeRequest) (*api.AllocativeResponse, error) {
	if !filepath.IsAbs(req.OutputPath) {
		return nil, errors.Protocolf(codes.InvalidArgument, "allocative output path must be absolute, got %q", req.OutputPath)
	}
	if err := c.fs.MkdirAll(req.OutputPath); err != nil {
		return nil, &errors.ResourceError{Op: "creating allocative output", Path: req.OutputPath, Err: err}
	}

	resp := &api.AllocativeResponse{OutputPath: req.OutputPath}
	for _, profile := range []struct{ name, file string }{
		{"heap", _allocativeHeap},
		{"allocs", _allocativeAllocs},
	} {
		path := filepath.Join(req.OutputPath, profile.file)
		if _, err := c.writeProfile(profile.name, path); err != nil {
			return nil, &errors.ResourceError{Op: "writing " + profile.name + " profile", Path: path, Err: err}
		}
		resp.Files = append(resp.Files, path)
	}

	path := filepath.Join(req.OutputPath, _allocativeReport)
	if err := c.fs.WriteFile(path, []byte(procstats.AllocatorReport("gc"))); err != nil {
		return nil, &errors.ResourceError{Op: "writing allocator report", Path: path, Err: err}
	}
	resp.Files = append(resp.Files, path)
	return resp, nil
}
