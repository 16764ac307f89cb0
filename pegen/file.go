package pegen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ava12/xpeg/langdef"
)

// WatchDebounceDelay is the delay between the last grammar file change and regeneration.
var WatchDebounceDelay = 100 * time.Millisecond

// OutputName returns default output file name: input name with .go or .json extension.
func OutputName(in string, json bool) string {
	ext := filepath.Ext(in)
	res := in[:len(in)-len(ext)]
	if json {
		return res + ".json"
	}
	return res + ".go"
}

// PackageName returns default package name for output file: the name of its directory.
func PackageName(out string) (string, error) {
	dir, e := filepath.Abs(out)
	if e != nil {
		return "", errors.WithStack(ioError(out, e))
	}

	return filepath.Base(filepath.Dir(dir)), nil
}

// GenerateFile reads grammar description from in and writes generated Go or JSON file to out.
// Output file is replaced only if generation succeeds.
// Returned errors are wrapped, use errors.Cause to get *xpeg.Error or *multierror.Error value.
func GenerateFile(in, out string, opts Options) error {
	src, e := os.ReadFile(in)
	if e != nil {
		if errors.Is(e, fs.ErrNotExist) {
			return errors.WithStack(grammarFileError(in, e))
		}
		return errors.WithStack(ioError(in, e))
	}

	g, e := langdef.ParseBytes(in, src)
	if e != nil {
		return errors.Wrapf(e, "cannot parse %s", in)
	}

	var content []byte
	if opts.JSON {
		content, e = GenerateJSON(g)
	} else {
		if opts.Package == "" {
			opts.Package, e = PackageName(out)
			if e != nil {
				return e
			}
		}
		if opts.SourceName == "" {
			opts.SourceName = filepath.Base(in)
		}
		content, e = GenerateGo(g, opts)
	}
	if e != nil {
		return errors.WithStack(e)
	}

	e = writeFile(out, content)
	if e == nil {
		log.Infof("generated %s from %s", out, in)
	}
	return e
}

func writeFile(name string, content []byte) error {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}

	f, e := os.CreateTemp(dir, "."+base+".*")
	if e != nil {
		return errors.WithStack(ioError(name, e))
	}

	tmp := f.Name()
	_, e = f.Write(content)
	if ce := f.Close(); e == nil {
		e = ce
	}
	if e == nil {
		e = os.Chmod(tmp, 0o644)
	}
	if e == nil {
		e = os.Rename(tmp, name)
	}
	if e != nil {
		os.Remove(tmp)
		return errors.WithStack(ioError(name, e))
	}

	return nil
}

// Watch regenerates out each time in changes until ctx is done.
// handler receives result of each GenerateFile call, including the initial one.
// The directory of in is watched so that editors replacing the file are handled.
func Watch(ctx context.Context, in, out string, opts Options, handler func(error)) error {
	w, e := fsnotify.NewWatcher()
	if e != nil {
		return errors.WithStack(ioError(in, e))
	}
	defer w.Close()

	target, e := filepath.Abs(in)
	if e == nil {
		e = w.Add(filepath.Dir(target))
	}
	if e != nil {
		return errors.WithStack(ioError(in, e))
	}

	handler(GenerateFile(in, out, opts))

	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timerC:
			timerC = nil
			handler(GenerateFile(in, out, opts))

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debugf("grammar file event: %s", event)
			if timerC == nil {
				timerC = time.After(WatchDebounceDelay)
			}

		case e, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %s", e.Error())
		}
	}
}
