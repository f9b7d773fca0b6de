package pager

import (
	"os"
	"path/filepath"
	"testing"

	"rowdb/internal/dberr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_pager.db")
	if data != nil {
		require.NoError(t, os.WriteFile(path, data, 0600))
	}
	return path
}

func createTestPager(t *testing.T, data []byte) (*Pager, string) {
	t.Helper()
	path := createTestFile(t, data)
	p, err := Open(path, PAGE_SIZE)
	require.NoError(t, err)
	return p, path
}

// patternBytes returns n bytes where byte i is i%251+1, so no byte is zero.
func patternBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i%251 + 1)
	}
	return data
}

// Tests

func TestOpenCreatesFile(t *testing.T) {
	p, path := createTestPager(t, nil)
	defer p.Close()

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.FileLength())
	assert.Equal(t, 0, p.NumCachedPages())
}

func TestOpenFailureIsFatal(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing-dir", "x.db"), PAGE_SIZE)
	require.Error(t, err)
	assert.True(t, dberr.IsFatal(err))
}

func TestOpenReportsFileLength(t *testing.T) {
	p, _ := createTestPager(t, patternBytes(5000))
	defer p.Close()

	assert.Equal(t, int64(5000), p.FileLength())
}

func TestGetPageOutOfBounds(t *testing.T) {
	p, _ := createTestPager(t, nil)
	defer p.Close()

	_, err := p.GetPage(TABLE_MAX_PAGES)
	require.Error(t, err)
	assert.True(t, dberr.IsFatal(err))
	assert.False(t, p.Contains(TABLE_MAX_PAGES))

	_, err = p.GetPage(TABLE_MAX_PAGES - 1)
	assert.NoError(t, err)
}

func TestGetPageBeyondFileIsZeroed(t *testing.T) {
	p, _ := createTestPager(t, nil)
	defer p.Close()

	page, err := p.GetPage(3)
	require.NoError(t, err)
	assert.Equal(t, PageID(3), page.PageID)
	assert.Equal(t, [PAGE_SIZE]byte{}, page.Data)
}

func TestGetPageIsCached(t *testing.T) {
	p, _ := createTestPager(t, nil)
	defer p.Close()

	first, err := p.GetPage(0)
	require.NoError(t, err)
	first.Data[10] = 0xAB

	second, err := p.GetPage(0)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, byte(0xAB), second.Data[10])
	assert.Equal(t, 1, p.NumCachedPages())
}

func TestGetPageLoadsFullAndPartialPages(t *testing.T) {
	data := patternBytes(PAGE_SIZE + 100)
	p, _ := createTestPager(t, data)
	defer p.Close()

	full, err := p.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, data[:PAGE_SIZE], full.Data[:])

	partial, err := p.GetPage(1)
	require.NoError(t, err)
	assert.Equal(t, data[PAGE_SIZE:], partial.Data[:100])
	assert.Equal(t, make([]byte, PAGE_SIZE-100), partial.Data[100:], "short read must leave the rest zeroed")
}

func TestFlushUnloadedPage(t *testing.T) {
	p, _ := createTestPager(t, nil)
	defer p.Close()

	err := p.Flush(0, PAGE_SIZE)
	require.Error(t, err)
	assert.True(t, dberr.IsFatal(err))
}

func TestFlushInvalidSize(t *testing.T) {
	p, _ := createTestPager(t, nil)
	defer p.Close()

	_, err := p.GetPage(0)
	require.NoError(t, err)

	assert.True(t, dberr.IsFatal(p.Flush(0, PAGE_SIZE+1)))
	assert.True(t, dberr.IsFatal(p.Flush(0, -1)))
}

func TestFlushWritesExactByteCount(t *testing.T) {
	p, path := createTestPager(t, nil)

	page, err := p.GetPage(1)
	require.NoError(t, err)
	copy(page.Data[:], "hello")

	require.NoError(t, p.Flush(1, 5))
	require.NoError(t, p.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, PAGE_SIZE+5)
	assert.Equal(t, "hello", string(data[PAGE_SIZE:]))
	assert.Equal(t, make([]byte, PAGE_SIZE), data[:PAGE_SIZE], "gap before page 1 reads back as zeros")
}

func TestFlushAndReopen(t *testing.T) {
	p, path := createTestPager(t, nil)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	want := patternBytes(PAGE_SIZE)
	copy(page.Data[:], want)
	require.NoError(t, p.Flush(0, PAGE_SIZE))
	require.NoError(t, p.Close())

	reopened, err := Open(path, PAGE_SIZE)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, int64(PAGE_SIZE), reopened.FileLength())
	page, err = reopened.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, want, page.Data[:])
}

func TestCloseDropsUnflushedPages(t *testing.T) {
	p, path := createTestPager(t, nil)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	copy(page.Data[:], "lost")
	require.NoError(t, p.Close())
	assert.Equal(t, 0, p.NumCachedPages())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestCloseReportsEveryFailure(t *testing.T) {
	p, _ := createTestPager(t, nil)
	_, err := p.GetPage(0)
	require.NoError(t, err)

	// pull the file out from under the pager
	require.NoError(t, p.dm.file.Close())

	assert.True(t, dberr.IsFatal(p.Flush(0, PAGE_SIZE)))
	err = p.Close()
	require.Error(t, err)
	assert.True(t, dberr.IsFatal(err))
	assert.ErrorIs(t, err, os.ErrClosed, "the failed close is reported with the failed sync")
}

func TestReleaseForgetsPage(t *testing.T) {
	p, _ := createTestPager(t, nil)
	defer p.Close()

	_, err := p.GetPage(2)
	require.NoError(t, err)
	p.Release(2)

	assert.False(t, p.Contains(2))
	assert.True(t, dberr.IsFatal(p.Flush(2, 1)))
}

func TestOpenRejectsBadDiskPageSize(t *testing.T) {
	path := createTestFile(t, nil)

	_, err := Open(path, 0)
	assert.True(t, dberr.IsFatal(err))

	_, err = Open(path, PAGE_SIZE+1)
	assert.True(t, dberr.IsFatal(err))
}

func TestSmallDiskPageSizePacksPages(t *testing.T) {
	const diskPageSize = 100
	path := createTestFile(t, nil)

	p, err := Open(path, diskPageSize)
	require.NoError(t, err)
	assert.Equal(t, diskPageSize, p.DiskPageSize())

	for id := PageID(0); id < 3; id++ {
		page, err := p.GetPage(id)
		require.NoError(t, err)
		for i := 0; i < diskPageSize; i++ {
			page.Data[i] = byte(id + 1)
		}
		// bytes past the disk page size are memory only
		page.Data[diskPageSize] = 0xEE
	}
	require.NoError(t, p.Flush(0, diskPageSize))
	require.NoError(t, p.Flush(1, diskPageSize))
	require.NoError(t, p.Flush(2, 10))
	assert.True(t, dberr.IsFatal(p.Flush(2, diskPageSize+1)))
	require.NoError(t, p.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 2*diskPageSize+10)
	assert.Equal(t, byte(1), data[diskPageSize-1])
	assert.Equal(t, byte(2), data[diskPageSize])
	assert.Equal(t, byte(3), data[2*diskPageSize])

	reopened, err := Open(path, diskPageSize)
	require.NoError(t, err)
	defer reopened.Close()

	page, err := reopened.GetPage(2)
	require.NoError(t, err)
	assert.Equal(t, byte(3), page.Data[9])
	assert.Equal(t, byte(0), page.Data[10])

	page, err = reopened.GetPage(1)
	require.NoError(t, err)
	assert.Equal(t, byte(2), page.Data[diskPageSize-1])
	assert.Equal(t, byte(0), page.Data[diskPageSize], "only the disk page size is read back")
}
