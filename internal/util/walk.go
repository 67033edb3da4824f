package util

import (
	"io/fs"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// WalkFunc is called for every file visited by WalkDirTree.
type WalkFunc func(path string, err error) error

// SkipFunc decides whether a path should be skipped before it is visited.
type SkipFunc func(path string, isDir bool) bool

// WalkDirTree walks root with a pool of worker goroutines, calling walkFn for
// every file. Worker errors are logged and do not stop the walk; only a
// failure to enumerate the tree itself is returned.
func WalkDirTree(root string, walkFn WalkFunc, skipPath SkipFunc, logger *zap.Logger, numThreads int) error {
	if numThreads < 1 {
		numThreads = 1
	}

	workQueue := make(chan string, 2)
	var wg sync.WaitGroup

	for i := 0; i < numThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workQueue {
				if err := walkFn(path, nil); err != nil {
					logger.Error("WalkDirTree - failed to process file",
						zap.String("path", path),
						zap.Error(err),
					)
				}
			}
		}()
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skipPath != nil && skipPath(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		workQueue <- path
		return nil
	})

	close(workQueue)
	wg.Wait()
	return err
}
