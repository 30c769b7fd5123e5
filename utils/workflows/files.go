package wfutils

import (
	"path/filepath"

	"github.com/samber/lo"
	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/paths"
)

func CreateFolder(ctx workflow.Context, destination paths.Path) error {
	return Execute(ctx, activities.CreateFolder, activities.CreateFolderInput{
		Destination: destination,
	}).Wait(ctx)
}

func StandardizeFileName(ctx workflow.Context, file paths.Path) (paths.Path, error) {
	result, err := Execute(ctx, activities.StandardizeFileName, activities.FileInput{
		Path: file,
	}).Result(ctx)
	if err != nil {
		return paths.Path{}, err
	}
	return result.Path, nil
}

func MoveFile(ctx workflow.Context, source, destination paths.Path) error {
	return Execute(ctx, activities.MoveFile, activities.MoveFileInput{
		Source:      source,
		Destination: destination,
	}).Wait(ctx)
}

func CopyFile(ctx workflow.Context, source, destination paths.Path) error {
	return Execute(ctx, activities.CopyFile, activities.MoveFileInput{
		Source:      source,
		Destination: destination,
	}).Wait(ctx)
}

func CopyToFolder(ctx workflow.Context, file, folder paths.Path) (paths.Path, error) {
	newPath := folder.Append(file.Base())
	err := CopyFile(ctx, file, newPath)
	return newPath, err
}

func MoveToFolder(ctx workflow.Context, file, folder paths.Path) (paths.Path, error) {
	newPath := folder.Append(file.Base())
	err := MoveFile(ctx, file, newPath)
	return newPath, err
}

func WriteFile(ctx workflow.Context, file paths.Path, data []byte) error {
	return Execute(ctx, activities.WriteFile, activities.WriteFileInput{
		Path: file,
		Data: data,
	}).Wait(ctx)
}

func ReadFile(ctx workflow.Context, file paths.Path) ([]byte, error) {
	return Execute(ctx, activities.ReadFile, activities.FileInput{
		Path: file,
	}).Result(ctx)
}

func DeletePath(ctx workflow.Context, path paths.Path) error {
	return Execute(ctx, activities.DeletePath, activities.FileInput{
		Path: path,
	}).Wait(ctx)
}

// GetWorkflowTempFolder is the scratch space of one run, keyed by the
// original run ID so continue-as-new keeps writing to the same place.
func GetWorkflowTempFolder(ctx workflow.Context) (paths.Path, error) {
	info := workflow.GetInfo(ctx)

	path := paths.New(paths.WorkDrive, filepath.Join("workflows", info.OriginalRunID))

	return path, CreateFolder(ctx, path)
}

// GetMapKeysSafely makes sure that the order of the keys returned are identical to other workflow executions.
func GetMapKeysSafely[K comparable, T any](ctx workflow.Context, m map[K]T) ([]K, error) {
	var keys []K
	err := workflow.SideEffect(ctx, func(ctx workflow.Context) any {
		return lo.Keys(m)
	}).Get(&keys)
	return keys, err
}
