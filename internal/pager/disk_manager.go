package pager

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DiskManager maps pages onto the file. Only the first diskPageSize bytes
// of a page are stored, and page n starts at n*diskPageSize, so pages sit
// back to back in the file with no padding between them.
type DiskManager struct {
	file         *os.File
	diskPageSize int
}

func OpenDiskManager(path string, diskPageSize int) (*DiskManager, error) {
	if diskPageSize <= 0 || diskPageSize > PAGE_SIZE {
		return nil, fmt.Errorf("disk page size %d out of range (0, %d]", diskPageSize, PAGE_SIZE)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	return &DiskManager{file: file, diskPageSize: diskPageSize}, nil
}

func (dm *DiskManager) Name() string {
	return dm.file.Name()
}

func (dm *DiskManager) DiskPageSize() int {
	return dm.diskPageSize
}

func (dm *DiskManager) Offset(id PageID) int64 {
	return int64(id) * int64(dm.diskPageSize)
}

func (dm *DiskManager) Length() (int64, error) {
	return dm.file.Seek(0, io.SeekEnd)
}

// ReadPage fills page from the file at the page's offset. A short read at
// the end of the file leaves the remainder of the page as it was.
func (dm *DiskManager) ReadPage(page *Page) (int, error) {
	n, err := dm.file.ReadAt(page.Data[:dm.diskPageSize], dm.Offset(page.PageID))
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}

// WritePage writes the first size bytes of page at the page's offset.
func (dm *DiskManager) WritePage(page *Page, size int) error {
	if size < 0 || size > dm.diskPageSize {
		return fmt.Errorf("write of %d bytes exceeds disk page size %d", size, dm.diskPageSize)
	}
	n, err := dm.file.WriteAt(page.Data[:size], dm.Offset(page.PageID))
	if err != nil {
		return err
	}
	if n != size {
		return io.ErrShortWrite
	}
	return nil
}

func (dm *DiskManager) Sync() error {
	return syncFile(dm.file)
}

func (dm *DiskManager) Close() error {
	return dm.file.Close()
}
