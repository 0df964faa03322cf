package util

import (
	"fmt"
	"os"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/common/logger"
)

func DoesFileExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDirectoriesIfNotExist creates dir and every missing parent with the
// permissions of parentDir. Existing directories are left as they are.
func MakeDirectoriesIfNotExist(parentDir string, dir string) error {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("'%s' exists and is not a directory", dir)
		}
		return nil
	}

	mode := os.FileMode(0755)
	if info, err := os.Stat(parentDir); err == nil {
		mode = info.Mode().Perm()
	}
	logger.Debug.Printf("Creating directory '%s'", dir)
	return os.MkdirAll(dir, mode)
}

func RemoveFile(src string) error {
	logger.Debug.Printf("   - Deleting '%s'", src)
	return os.Remove(src)
}

// DirectoryProvisioner creates output directories on demand.
type DirectoryProvisioner struct {
	parentDir string

	api.DirectoryProvisioner
}

// NewDirectoryProvisioner uses parentDir as the permission template for the
// directories it creates.
func NewDirectoryProvisioner(parentDir string) api.DirectoryProvisioner {
	return &DirectoryProvisioner{
		parentDir: parentDir,
	}
}

func (s *DirectoryProvisioner) EnsureDir(path string) error {
	return MakeDirectoriesIfNotExist(s.parentDir, path)
}
