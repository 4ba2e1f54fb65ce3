package saver_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/askiada/go-labplanner/internal/blob"
	"github.com/askiada/go-labplanner/internal/saver"
	"github.com/askiada/go-labplanner/pkg/labplanner"
	"github.com/askiada/go-labplanner/pkg/labplanner/codec"
	"github.com/askiada/go-labplanner/pkg/labplanner/labsheet"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

func planned(t *testing.T) (*model.Experiment, model.LabPacket) {
	t.Helper()

	planner, err := labplanner.New()
	require.NoError(t, err)

	exp, err := planner.Run("exp", "A", []model.ConstructionFile{{
		Steps: []model.Step{
			model.PCR{Product: "P", ForwardOligo: "F", ReverseOligo: "R", Template: "T", ProductSize: 900},
		},
		Sequences: map[string]model.Polynucleotide{"T": model.NewPolynucleotide("ACGT")},
	}}, nil)
	require.NoError(t, err)

	packet, err := labsheet.NewFactory().Run(exp)
	require.NoError(t, err)

	return exp, packet
}

func get(t *testing.T, store blob.Store, key string) io.ReadCloser {
	t.Helper()

	rc, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	return rc
}

func TestSave(t *testing.T) {
	t.Parallel()

	exp, packet := planned(t)
	store := blob.NewMemory()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	keys, err := saver.New(store, saver.WithConcurrency(2), saver.WithLogger(logger)).Save(context.Background(), exp, packet)
	require.NoError(t, err)

	want := []string{
		"exp/experiment.json",
		"exp/inventory/0_Box.txt",
		"exp/inventory/boxes.xlsx",
		"exp/inventory/inventory.json",
		"exp/labpacket/0_exp: PCR.txt",
		"exp/labpacket/1_exp: Zymo Cleanup.txt",
		"exp/labpacket/2_exp: Gel.txt",
		"exp/metadata.txt",
	}
	assert.Equal(t, want, keys)

	stored, err := store.List(context.Background(), "exp/")
	require.NoError(t, err)
	assert.Equal(t, want, stored)

	box, err := codec.ReadBox(get(t, store, "exp/inventory/0_Box.txt"))
	require.NoError(t, err)
	assert.Equal(t, &exp.Inventory.Boxes[0], box)

	got, err := codec.ReadExperiment(get(t, store, "exp/experiment.json"))
	require.NoError(t, err)
	assert.Equal(t, exp.ConstructionFiles, got.ConstructionFiles)

	metadata, err := io.ReadAll(get(t, store, "exp/metadata.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(metadata), "Experiment Name: exp\n"))

	sheet, err := io.ReadAll(get(t, store, "exp/labpacket/0_exp: PCR.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sheet), "exp: PCR: PCR\n"))

	xlsx, err := excelize.OpenReader(get(t, store, "exp/inventory/boxes.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"0_expBox0"}, xlsx.GetSheetList())
	require.NoError(t, xlsx.Close())

	assert.Len(t, hook.AllEntries(), len(want)+1)
	assert.Equal(t, "experiment saved", hook.LastEntry().Message)
	assert.Equal(t, len(want), hook.LastEntry().Data["files"])
}

func TestLoadInventory(t *testing.T) {
	t.Parallel()

	exp, packet := planned(t)
	store := blob.NewMemory()
	s := saver.New(store)

	_, err := s.Save(context.Background(), exp, packet)
	require.NoError(t, err)

	inv, err := s.LoadInventory(context.Background(), saver.InventoryKey("exp"))
	require.NoError(t, err)
	assert.Equal(t, exp.Inventory.LocToConc, inv.LocToConc)
	assert.Equal(t, exp.Inventory.ConstructToLocations, inv.ConstructToLocations)

	// a later run extends the loaded inventory
	planner, err := labplanner.New()
	require.NoError(t, err)

	next, err := planner.Run("next", "B", []model.ConstructionFile{{Steps: []model.Step{
		model.PCR{Product: "P2", ForwardOligo: "F", ReverseOligo: "R3", Template: "T"},
	}}}, inv)
	require.NoError(t, err)
	require.Len(t, next.Inventory.Boxes, 2)
	assert.Len(t, next.Inventory.LocationsAt("F", model.ConcUM10), 1)

	_, err = s.LoadInventory(context.Background(), saver.InventoryKey("missing"))
	require.ErrorIs(t, err, blob.ErrNotFound)

	require.NoError(t, store.Put(context.Background(), "bad.json", strings.NewReader("{"), ""))
	_, err = s.LoadInventory(context.Background(), "bad.json")
	require.Error(t, err)
}

// failingStore rejects one key and counts the uploads it saw.
type failingStore struct {
	blob.Store
	mu     sync.Mutex
	failOn string
	puts   int
}

func (f *failingStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	f.mu.Lock()
	f.puts++
	f.mu.Unlock()

	if key == f.failOn {
		return assert.AnError
	}

	return f.Store.Put(ctx, key, r, contentType)
}

func TestSaveErrors(t *testing.T) {
	t.Parallel()

	exp, packet := planned(t)

	store := &failingStore{Store: blob.NewMemory(), failOn: "exp/metadata.txt"}
	_, err := saver.New(store, saver.WithConcurrency(1)).Save(context.Background(), exp, packet)
	require.ErrorIs(t, err, assert.AnError)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = saver.New(blob.NewMemory()).Save(ctx, exp, packet)
	require.ErrorIs(t, err, context.Canceled)

	_, err = saver.New(blob.NewMemory()).Save(context.Background(), &model.Experiment{Name: "exp"}, packet)
	require.Error(t, err)

	broken := *exp
	broken.ConstructionFiles = []model.ConstructionFile{{Steps: []model.Step{nil}}}
	store = &failingStore{Store: blob.NewMemory()}
	_, err = saver.New(store).Save(context.Background(), &broken, packet)
	require.Error(t, err)
	assert.Zero(t, store.puts)
}
