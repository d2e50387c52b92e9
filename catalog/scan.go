package catalog

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/tga"
)

const numWorkers = 10

// Scanner walks directory trees and records every TGA file it can
// parse into the catalog.
type Scanner struct {
	db     *DB
	logger *log.Logger
}

// NewScanner returns a Scanner writing to db. Progress and skipped
// files are reported through logger.
func NewScanner(db *DB, logger *log.Logger) *Scanner {
	return &Scanner{
		db:     db,
		logger: logger,
	}
}

// crcFile computes the IEEE CRC-32 of the whole file while also
// parsing the header off the same pass through the data.
func crcFile(file string) (tga.Config, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return tga.Config{}, "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	c, err := tga.DecodeConfig(io.TeeReader(f, h))
	if err != nil {
		return tga.Config{}, "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return tga.Config{}, "", err
	}

	return c, fmt.Sprintf("%08X", h.Sum32()), nil
}

func (s *Scanner) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			if !strings.EqualFold(filepath.Ext(file), ".tga") {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Scanner) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			c, crc, err := crcFile(file)
			switch {
			case err == tga.ErrInvalidFormat, err == tga.ErrUnsupportedVariant, err == tga.ErrTruncated:
				// Not indexable, but no reason to abort the scan
				s.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			case err != nil:
				errc <- err
				return
			}

			if err := s.db.Put(Entry{
				Path:         file,
				CRC:          crc,
				Width:        c.Width,
				Height:       c.Height,
				Channels:     c.Channels,
				BitsPerPixel: c.BitsPerPixel,
				RLE:          c.RLE,
			}); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and indexes every TGA file found underneath it.
func (s *Scanner) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := s.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
