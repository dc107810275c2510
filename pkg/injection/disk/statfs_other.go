//go:build !unix

package disk

const fallbackTotalBytes = 1 << 30 // 1GiB, used where statfs is unavailable

// calculateBytesToFill falls back to a flat capacity assumption on
// platforms without a portable statfs primitive in the examples corpus.
func calculateBytesToFill(path string, targetUsage float64) (int64, error) {
	return int64(float64(fallbackTotalBytes) * targetUsage), nil
}

func fillDisk(path string, size int64) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Truncate(size)
}
