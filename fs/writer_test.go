package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/miplib"
	"github.com/fwojciec/miplib/fs"
	"github.com/fwojciec/miplib/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("data", "air05.mps.gz"), fs.InstanceFile("data", "air05"))
}

func TestWriter_WriteExport(t *testing.T) {
	t.Parallel()

	t.Run("writes exporter output to the named file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		exporter := miplib.ExporterFunc(func(out io.Writer, instances []*miplib.Instance) error {
			for _, inst := range instances {
				if _, err := io.WriteString(out, inst.Name+"\n"); err != nil {
					return err
				}
			}
			return nil
		})

		err := w.WriteExport("names.txt", exporter, []*miplib.Instance{{Name: "air05"}, {Name: "mas74"}})

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, "names.txt"))
		require.NoError(t, err)
		assert.Equal(t, "air05\nmas74\n", string(got))
		assert.NoFileExists(t, filepath.Join(dir, "names.txt.tmp"))
	})

	t.Run("creates missing base directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "out")
		w := fs.NewWriter(dir)
		exporter := &mock.Exporter{
			ExportFn: func(out io.Writer, _ []*miplib.Instance) error {
				_, err := io.WriteString(out, "ok")
				return err
			},
		}

		require.NoError(t, w.WriteExport("x.json", exporter, nil))
		assert.FileExists(t, filepath.Join(dir, "x.json"))
	})

	t.Run("leaves no file when export fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		exporter := &mock.Exporter{
			ExportFn: func(out io.Writer, _ []*miplib.Instance) error {
				_, _ = io.WriteString(out, "partial")
				return errors.New("encode failed")
			},
		}

		err := w.WriteExport("x.csv", exporter, nil)

		require.Error(t, err)
		assert.NoFileExists(t, filepath.Join(dir, "x.csv"))
		assert.NoFileExists(t, filepath.Join(dir, "x.csv.tmp"))
	})

	t.Run("keeps previous file when export fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x.csv"), []byte("previous"), 0644))
		w := fs.NewWriter(dir)
		exporter := &mock.Exporter{
			ExportFn: func(io.Writer, []*miplib.Instance) error {
				return errors.New("encode failed")
			},
		}

		require.Error(t, w.WriteExport("x.csv", exporter, nil))
		got, err := os.ReadFile(filepath.Join(dir, "x.csv"))
		require.NoError(t, err)
		assert.Equal(t, "previous", string(got))
	})
}
