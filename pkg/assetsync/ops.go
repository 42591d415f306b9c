package assetsync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fulmenhq/folio/internal/printer"
	"github.com/fulmenhq/folio/pkg/safeio"
)

// fileOps is the only place the syncer touches the destination tree.
// Decisions are made before an op is called, so a dry run walks exactly the
// same path as a live one.
type fileOps interface {
	EnsureDir(dir string) error
	Copy(src, dst string) error
	Delete(path string) error
}

type liveOps struct{ out io.Writer }

func (o liveOps) EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o750)
}

func (o liveOps) Copy(src, dst string) error {
	if err := o.EnsureDir(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := safeio.CopyFile(src, dst); err != nil {
		return err
	}
	printer.Action(o.out, false, "COPY ", "%s  ->  %s", src, dst)
	return nil
}

func (o liveOps) Delete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	printer.Action(o.out, false, "DELETE", "%s", path)
	return nil
}

type dryOps struct{ out io.Writer }

func (o dryOps) EnsureDir(string) error { return nil }

func (o dryOps) Copy(src, dst string) error {
	printer.Action(o.out, true, "COPY ", "%s  ->  %s", src, dst)
	return nil
}

func (o dryOps) Delete(path string) error {
	printer.Action(o.out, true, "DELETE", "%s", path)
	return nil
}
