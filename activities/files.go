package activities

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/utils"
)

type FileInput struct {
	Path paths.Path
}

type FileResult struct {
	Path paths.Path
}

type MoveFileInput struct {
	Source      paths.Path
	Destination paths.Path
}

func MoveFile(ctx context.Context, input MoveFileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "MoveFile")
	log.Info("Starting MoveFileActivity")

	err := os.MkdirAll(input.Destination.Dir().Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}
	err = os.Rename(input.Source.Local(), input.Destination.Local())
	if err != nil {
		return nil, err
	}
	err = os.Chmod(input.Destination.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: input.Destination,
	}, nil
}

func CopyFile(ctx context.Context, input MoveFileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "CopyFile")
	log.Info("Starting CopyFileActivity")

	err := os.MkdirAll(input.Destination.Dir().Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	source, err := os.Open(input.Source.Local())
	if err != nil {
		return nil, err
	}
	defer func(source io.Closer) {
		_ = source.Close()
	}(source)

	destination, err := os.Create(input.Destination.Local())
	if err != nil {
		return nil, err
	}
	defer func(destination io.Closer) {
		_ = destination.Close()
	}(destination)

	_, err = io.Copy(destination, source)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: input.Destination,
	}, nil
}

func StandardizeFileName(ctx context.Context, input FileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "StandardizeFileName")
	log.Info("Starting StandardizeFileNameActivity")

	path := paths.Path{
		Drive: input.Path.Drive,
		Path:  utils.FixFilename(input.Path.Path),
	}
	err := os.Rename(input.Path.Local(), path.Local())
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: path,
	}, nil
}

type CreateFolderInput struct {
	Destination paths.Path
}

func CreateFolder(ctx context.Context, input CreateFolderInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "CreateFolder")
	log.Info("Starting CreateFolderActivity")

	err := os.MkdirAll(input.Destination.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}
	err = os.Chmod(input.Destination.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: input.Destination,
	}, nil
}

type WriteFileInput struct {
	Path paths.Path
	Data []byte
}

func WriteFile(ctx context.Context, input WriteFileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "WriteFile")
	log.Info("Starting WriteFileActivity")

	err := os.MkdirAll(input.Path.Dir().Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	err = os.WriteFile(input.Path.Local(), input.Data, os.ModePerm)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: input.Path,
	}, nil
}

func ReadFile(ctx context.Context, input FileInput) ([]byte, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "ReadFile")
	log.Info("Starting ReadFileActivity")

	return os.ReadFile(input.Path.Local())
}

func DeletePath(ctx context.Context, input FileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "DeletePath")
	log.Info("Starting DeletePathActivity")

	err := os.RemoveAll(input.Path.Local())
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: input.Path,
	}, nil
}

type DeleteOldFilesInput struct {
	Root      paths.Path
	OlderThan time.Time
}

type DeleteOldFilesResult struct {
	DeletedCount int
}

// DeleteOldFiles removes files under Root whose modification time predates
// the cutoff, then prunes directories the sweep left empty.
func DeleteOldFiles(ctx context.Context, input DeleteOldFilesInput) (*DeleteOldFilesResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "DeleteOldFiles")
	log.Info("Starting DeleteOldFilesActivity")

	stop := simpleHeartBeater(ctx)
	defer close(stop)

	deleted := 0
	root := input.Root.Local()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(input.OlderThan) {
			err := os.Remove(path)
			if err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = deleteEmptyDirectories(root)
	if err != nil {
		return nil, err
	}

	return &DeleteOldFilesResult{
		DeletedCount: deleted,
	}, nil
}

func deleteEmptyDirectories(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(root, entry.Name())
		err = deleteEmptyDirectories(sub)
		if err != nil {
			return err
		}
		empty, err := utils.IsDirEmpty(sub)
		if err != nil {
			return err
		}
		if empty {
			err = os.Remove(sub)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
