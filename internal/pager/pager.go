package pager

import (
	"errors"
	"log/slog"

	"rowdb/internal/dberr"
	"rowdb/internal/logging"
)

// Pager caches pages of the table file. Pages are loaded on first use and
// stay in memory until Close; there is no eviction and no dirty tracking,
// callers decide what to write back with Flush.
type Pager struct {
	dm         *DiskManager
	fileLength int64
	pages      map[PageID]*Page
	log        *slog.Logger
}

// Open opens or creates the file at path. diskPageSize is how many bytes
// of each page are stored on disk; pass PAGE_SIZE to store pages whole.
func Open(path string, diskPageSize int) (*Pager, error) {
	dm, err := OpenDiskManager(path, diskPageSize)
	if err != nil {
		return nil, dberr.Fatal("pager.Open", err)
	}

	fileLength, err := dm.Length()
	if err != nil {
		return nil, dberr.Fatal("pager.Open", errors.Join(err, dm.Close()))
	}

	p := &Pager{
		dm:         dm,
		fileLength: fileLength,
		pages:      make(map[PageID]*Page),
		log:        logging.WithComponent("pager").With("file", path),
	}
	p.log.Debug("opened", "file_length", fileLength)
	return p, nil
}

// FileLength is the size of the file when it was opened.
func (p *Pager) FileLength() int64 {
	return p.fileLength
}

func (p *Pager) DiskPageSize() int {
	return p.dm.DiskPageSize()
}

func (p *Pager) NumCachedPages() int {
	return len(p.pages)
}

func (p *Pager) Contains(id PageID) bool {
	_, exists := p.pages[id]
	return exists
}

// numFilePages counts the pages present on disk, a trailing partial page
// included.
func (p *Pager) numFilePages() int64 {
	size := int64(p.dm.DiskPageSize())
	n := p.fileLength / size
	if p.fileLength%size != 0 {
		n++
	}
	return n
}

// GetPage returns the cached page, reading it from the file on a miss.
// The returned page is shared: writes through it are what Flush persists.
func (p *Pager) GetPage(id PageID) (*Page, error) {
	if id >= TABLE_MAX_PAGES {
		return nil, dberr.Fatalf("pager.GetPage", "tried to fetch page number out of bounds: %d >= %d", id, TABLE_MAX_PAGES)
	}

	if page, exists := p.pages[id]; exists {
		return page, nil
	}

	page := NewPage(id)
	if int64(id) < p.numFilePages() {
		n, err := p.dm.ReadPage(page)
		if err != nil {
			return nil, dberr.Fatal("pager.GetPage", err)
		}
		p.log.Debug("loaded page", "page", id, "bytes", n)
	} else {
		p.log.Debug("allocated page", "page", id)
	}

	p.pages[id] = page
	return page, nil
}

// Flush writes the first size bytes of a cached page back to the file.
func (p *Pager) Flush(id PageID, size int) error {
	page, exists := p.pages[id]
	if !exists {
		return dberr.Fatalf("pager.Flush", "tried to flush page %d which is not loaded", id)
	}
	if err := p.dm.WritePage(page, size); err != nil {
		return dberr.Fatal("pager.Flush", err)
	}
	p.log.Debug("flushed page", "page", id, "bytes", size)
	return nil
}

// Release drops a page from the cache without writing it.
func (p *Pager) Release(id PageID) {
	delete(p.pages, id)
}

// Close syncs the file, closes it and drops every cached page. Pages that
// were not flushed beforehand are lost.
func (p *Pager) Close() error {
	clear(p.pages)

	if err := p.dm.Sync(); err != nil {
		return dberr.Fatal("pager.Close", errors.Join(err, p.dm.Close()))
	}
	if err := p.dm.Close(); err != nil {
		return dberr.Fatal("pager.Close", err)
	}
	p.log.Debug("closed")
	return nil
}
