package koala

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/koala/image"
	"github.com/bodgit/koala/tile"
)

const numWorkers = 10

// Summary is the result of scanning a directory tree for Koala files.
type Summary struct {
	Files       int
	Skipped     int
	UniqueChars tile.UniqueChars
	ColorsUsed  tile.ColorsUsed
}

func (s *Summary) add(r *Report) {
	if r == nil {
		s.Skipped++
		return
	}
	s.Files++
	s.UniqueChars.Merge(r.UniqueChars)
	s.ColorsUsed.Add(r.ColorsUsed)
}

func isKoala(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".koa", ".kla", ".koala":
		return true
	default:
		return false
	}
}

func (k *Koala) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, but not the base itself which may be "."
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isKoala(file) {
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

// A nil report is sent for every file that is skipped
func (k *Koala) fileWorker(ctx context.Context, in <-chan string, out chan<- *Report, wg *sync.WaitGroup) (<-chan error, error) {
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for file := range in {
			r, err := k.Analyze(file)
			switch {
			case errors.Is(err, image.ErrMalformedInput):
				k.logger.Printf("Skipping \"%s\": %s\n", file, err)
			case err != nil:
				errc <- err
				return
			default:
				k.LogReport(r)
			}

			select {
			case out <- r:
			case <-ctx.Done():
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

// Scan walks path looking for Koala files, analyses them concurrently and
// merges the results. Files that are not valid Koala images are counted as
// skipped rather than failing the scan.
func (k *Koala) Scan(path string) (*Summary, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := k.findFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	reports := make(chan *Report)
	var workers sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		errc, err := k.fileWorker(ctx, files, reports, &workers)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	summary := &Summary{
		UniqueChars: make(tile.UniqueChars),
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range reports {
			summary.add(r)
		}
	}()

	err = waitForPipeline(errcList...)

	// Stop any remaining workers early on error
	cancelFunc()
	workers.Wait()
	close(reports)
	<-done

	if err != nil {
		return nil, err
	}

	return summary, nil
}
