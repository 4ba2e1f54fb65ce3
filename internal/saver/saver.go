// Package saver writes the files of a planned experiment to a blob store and
// reads inventories back for later runs.
package saver

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-labplanner/internal/blob"
	"github.com/askiada/go-labplanner/pkg/labplanner/codec"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultConcurrency = 4
)

// Saver uploads experiment files with a bounded number of concurrent writes.
type Saver struct {
	store       blob.Store
	concurrency int
	logger      *logrus.Logger
}

// Option configures a Saver.
type Option func(*Saver)

// WithConcurrency bounds the number of uploads in flight.
func WithConcurrency(n int) Option {
	return func(s *Saver) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger logs every upload at debug level and every save at info level.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Saver) {
		s.logger = logger
	}
}

// New returns a saver writing to store.
func New(store blob.Store, opts ...Option) *Saver {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Saver{store: store, concurrency: defaultConcurrency, logger: discard}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// InventoryKey is the key of the inventory JSON of the named experiment.
func InventoryKey(experimentName string) string {
	return path.Join(experimentName, "inventory", "inventory.json")
}

type file struct {
	key         string
	contentType string
	data        []byte
}

// Save renders exp and packet and uploads them under "<name>/". It returns
// the written keys in ascending order. Nothing is uploaded when rendering
// fails.
func (s *Saver) Save(ctx context.Context, exp *model.Experiment, packet model.LabPacket) ([]string, error) {
	if exp == nil || exp.Inventory == nil {
		return nil, errors.New("experiment with an inventory must be set")
	}

	files, err := render(exp, packet)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to render experiment %s", exp.Name)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(s.concurrency)

	for _, f := range files {
		f := f
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "upload of %s cancelled", f.key)
			}

			if err := s.store.Put(dCtx, f.key, bytes.NewReader(f.data), f.contentType); err != nil {
				return err
			}

			s.logger.WithFields(logrus.Fields{"key": f.key, "bytes": len(f.data)}).Debug("file saved")

			return nil
		})
	}

	if err := errGrp.Wait(); err != nil {
		return nil, errors.Wrapf(err, "unable to save experiment %s", exp.Name)
	}

	keys := make([]string, len(files))
	for i, f := range files {
		keys[i] = f.key
	}
	sort.Strings(keys)

	s.logger.WithFields(logrus.Fields{"experiment": exp.Name, "files": len(keys)}).Info("experiment saved")

	return keys, nil
}

// LoadInventory reads the inventory stored at key.
func (s *Saver) LoadInventory(ctx context.Context, key string) (*model.Inventory, error) {
	rc, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load inventory")
	}
	defer rc.Close()

	inv, err := codec.ReadInventory(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load inventory %s", key)
	}

	return inv, nil
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

func render(exp *model.Experiment, packet model.LabPacket) ([]file, error) {
	var files []file

	add := func(key, contentType string, write func(w io.Writer) error) error {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return err
		}
		files = append(files, file{key: path.Join(exp.Name, key), contentType: contentType, data: buf.Bytes()})

		return nil
	}

	err := add("metadata.txt", contentTypeText, func(w io.Writer) error {
		return codec.WriteMetadata(w, exp)
	})
	if err != nil {
		return nil, err
	}

	err = add("experiment.json", contentTypeJSON, func(w io.Writer) error {
		return codec.WriteExperiment(w, exp)
	})
	if err != nil {
		return nil, err
	}

	err = add(path.Join("inventory", "inventory.json"), contentTypeJSON, func(w io.Writer) error {
		return codec.WriteInventory(w, exp.Inventory)
	})
	if err != nil {
		return nil, err
	}

	for i := range exp.Inventory.Boxes {
		box := &exp.Inventory.Boxes[i]

		err = add(path.Join("inventory", strconv.Itoa(i)+"_Box.txt"), contentTypeText, func(w io.Writer) error {
			return codec.WriteBox(w, box)
		})
		if err != nil {
			return nil, err
		}
	}

	err = add(path.Join("inventory", "boxes.xlsx"), contentTypeXLSX, func(w io.Writer) error {
		return codec.WriteBoxMap(w, exp.Inventory.Boxes)
	})
	if err != nil {
		return nil, err
	}

	for i := range packet.Sheets {
		sheet := &packet.Sheets[i]
		name := strconv.Itoa(i) + "_" + fileNameReplacer.Replace(sheet.Title) + ".txt"

		err = add(path.Join("labpacket", name), contentTypeText, func(w io.Writer) error {
			return codec.WriteLabSheet(w, sheet)
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
