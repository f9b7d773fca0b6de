package pager

const (
	PAGE_SIZE = 4096
	// TABLE_MAX_PAGES bounds the page cache and therefore the table.
	TABLE_MAX_PAGES = 100
)

type PageID uint32

// raw bytes - the in-memory copy of one page of the file
type Page struct {
	PageID PageID
	Data   [PAGE_SIZE]byte
}

func NewPage(id PageID) *Page {
	return &Page{PageID: id}
}
