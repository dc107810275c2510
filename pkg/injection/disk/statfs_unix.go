//go:build unix

package disk

import "golang.org/x/sys/unix"

// calculateBytesToFill returns how many bytes to write under path to bring
// the filesystem to targetUsage of capacity, or 0 if already past it.
func calculateBytesToFill(path string, targetUsage float64) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}

	total := int64(stat.Blocks) * int64(stat.Bsize)
	free := int64(stat.Bavail) * int64(stat.Bsize)
	used := total - free

	targetUsed := int64(float64(total) * targetUsage)
	toFill := targetUsed - used
	if toFill < 0 {
		toFill = 0
	}
	return toFill, nil
}

// fillDisk creates a sparse file of the given size without writing actual
// data blocks, mirroring File::set_len in the original source.
func fillDisk(path string, size int64) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Truncate(size)
}
