package catalog

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/tga"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T, dir string) *DB {
	db, err := New(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	return db
}

func TestPutAndFind(t *testing.T) {
	dir, err := ioutil.TempDir("", "catalog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db := testDB(t, dir)
	defer db.Close()

	e := Entry{
		Path:         "/textures/wall.tga",
		CRC:          "DEADBEEF",
		Width:        64,
		Height:       32,
		Channels:     4,
		BitsPerPixel: 32,
		RLE:          true,
	}
	require.NoError(t, db.Put(e))

	found, err := db.FindByPath(e.Path)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, e, *found)

	missing, err := db.FindByPath("/textures/floor.tga")
	require.NoError(t, err)
	require.Nil(t, missing)

	// Replacing by path keeps a single row
	e.CRC = "CAFEF00D"
	require.NoError(t, db.Put(e))
	found, err = db.FindByPath(e.Path)
	require.NoError(t, err)
	require.Equal(t, "CAFEF00D", found.CRC)
}

func TestFindByCRC(t *testing.T) {
	dir, err := ioutil.TempDir("", "catalog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db := testDB(t, dir)
	defer db.Close()

	for _, path := range []string{"/b.tga", "/a.tga"} {
		require.NoError(t, db.Put(Entry{
			Path:         path,
			CRC:          "12345678",
			Width:        8,
			Height:       8,
			Channels:     3,
			BitsPerPixel: 24,
		}))
	}
	require.NoError(t, db.Put(Entry{Path: "/c.tga", CRC: "87654321", Width: 8, Height: 8, Channels: 3, BitsPerPixel: 24}))

	entries, err := db.FindByCRC("12345678")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "/a.tga", entries[0].Path)
	require.Equal(t, "/b.tga", entries[1].Path)

	entries, err = db.FindByCRC("00000000")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestScan(t *testing.T) {
	dir, err := ioutil.TempDir("", "catalog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	m := tga.New(4, 2, 3)
	for i := range m.Pix {
		m.Pix[i] = byte(i)
	}
	require.NoError(t, tga.EncodeFile(filepath.Join(dir, "one.tga"), m, tga.RGB))

	sub := filepath.Join(dir, "deep")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, tga.EncodeFile(filepath.Join(sub, "two.TGA"), m, tga.RGBRLE))

	// Neither of these should be indexed
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "junk.tga"), []byte{0, 0, 0}, 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not an image"), 0644))

	db := testDB(t, dir)
	defer db.Close()

	s := NewScanner(db, log.New(ioutil.Discard, "", 0))
	require.NoError(t, s.Scan(dir))

	one, err := db.FindByPath(filepath.Join(dir, "one.tga"))
	require.NoError(t, err)
	require.NotNil(t, one)
	require.Equal(t, 4, one.Width)
	require.Equal(t, 2, one.Height)
	require.False(t, one.RLE)

	two, err := db.FindByPath(filepath.Join(sub, "two.TGA"))
	require.NoError(t, err)
	require.NotNil(t, two)
	require.True(t, two.RLE)

	// Both files hold the same pixels but different encodings, so
	// their checksums differ
	require.NotEqual(t, one.CRC, two.CRC)

	junk, err := db.FindByPath(filepath.Join(dir, "junk.tga"))
	require.NoError(t, err)
	require.Nil(t, junk)
}
