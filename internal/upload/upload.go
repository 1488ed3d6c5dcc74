// Package upload sends a batch of pattern files to the loom server and then
// selects the first of them.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/r-owen/toika-loom-client/internal/logging/events"
	"github.com/r-owen/toika-loom-client/internal/protocol"
)

// MaxFiles is the largest batch accepted at once.
const MaxFiles = 10

var ErrTooManyFiles = fmt.Errorf("cannot upload more than %d files at once", MaxFiles)

var nameParts = regexp.MustCompile(`\d+|\D+`)

// Sender delivers one command and returns once it has been written.
type Sender interface {
	Send(ctx context.Context, cmd protocol.Command) error
}

// ReadFunc loads a file's contents; os.ReadFile fits.
type ReadFunc func(path string) ([]byte, error)

// Plan validates a batch and orders it by file name, numbers compared by
// value. An empty batch yields nil.
func Plan(paths []string) ([]string, error) {
	if len(paths) > MaxFiles {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyFiles, len(paths))
	}
	if len(paths) == 0 {
		return nil, nil
	}
	ordered := append([]string(nil), paths...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return NaturalLess(filepath.Base(ordered[i]), filepath.Base(ordered[j]))
	})
	return ordered, nil
}

// Run uploads paths one at a time, each send completing before the next
// file is read, then selects the first file. It returns the selected name,
// or "" for an empty batch. The first failure ends the batch.
func Run(ctx context.Context, sender Sender, paths []string, read ReadFunc) (string, error) {
	ordered, err := Plan(paths)
	if err != nil {
		events.Upload.Error(err)
		return "", err
	}
	if len(ordered) == 0 {
		return "", nil
	}
	names := make([]string, len(ordered))
	for i, path := range ordered {
		names[i] = filepath.Base(path)
	}
	events.Upload.Start(names)
	for i, path := range ordered {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := read(path)
		if err != nil {
			err = fmt.Errorf("read %s: %w", path, err)
			events.Upload.Error(err)
			return "", err
		}
		if err := sender.Send(ctx, protocol.FileCommand{Name: names[i], Data: string(data)}); err != nil {
			err = fmt.Errorf("send %s: %w", names[i], err)
			events.Upload.Error(err)
			return "", err
		}
		events.Upload.File(names[i], len(data))
	}
	if err := sender.Send(ctx, protocol.SelectPattern{Name: names[0]}); err != nil {
		err = fmt.Errorf("select %s: %w", names[0], err)
		events.Upload.Error(err)
		return "", err
	}
	events.Upload.Done(names[0])
	return names[0], nil
}

// NaturalLess orders names so that embedded numbers compare by value:
// p2 sorts before p10. Text runs compare case-insensitively first.
func NaturalLess(a, b string) bool {
	partsA := nameParts.FindAllString(a, -1)
	partsB := nameParts.FindAllString(b, -1)
	for i := 0; i < len(partsA) && i < len(partsB); i++ {
		pa, pb := partsA[i], partsB[i]
		na, errA := strconv.Atoi(pa)
		nb, errB := strconv.Atoi(pb)
		if errA == nil && errB == nil {
			if na != nb {
				return na < nb
			}
			continue
		}
		la, lb := strings.ToLower(pa), strings.ToLower(pb)
		if la != lb {
			return la < lb
		}
		if pa != pb {
			return pa < pb
		}
	}
	return len(partsA) < len(partsB)
}

// IsTooMany reports whether err rejected an oversized batch.
func IsTooMany(err error) bool {
	return errors.Is(err, ErrTooManyFiles)
}
