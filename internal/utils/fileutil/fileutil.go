package fileutil

import (
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a temporary file and then renames it to the target file.
// An existing target is replaced.
// AtomicWriteFile 将数据写入临时文件，然后将其重命名为目标文件。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename) // #nosec G703 // Safe: filepath.Dir cleans the path preventing traversal
	tmpFile, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name()) // Clean up if something fails

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), filename) // #nosec G703 // filename is validated by caller
}

// EnsureDir creates dir and any missing parents. An existing directory is not an error.
// EnsureDir 创建目录及其缺失的父目录，目录已存在不视为错误。
func EnsureDir(dir string) error {
	return os.MkdirAll(filepath.Clean(dir), 0755)
}

// Exists reports whether path exists.
// Exists 判断路径是否存在。
func Exists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}
