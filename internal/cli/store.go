package cli

import (
	"fmt"

	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// resolveDataDir applies --data-dir > config data_dir > env > default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
}

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, systemError("resolve data dir", err)
	}

	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config backend %q: %w", cfg.Backend, err)
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.log))
	if err := backend.Attach(cfg); err != nil {
		return nil, systemError("attach store", err)
	}
	return backend, nil
}

// update loads the directory, applies fn, and saves the result when fn
// reports a change. Errors from fn are returned unchanged so their kind
// decides the exit code.
func (a *app) update(fn func(d *types.Directory) (changed bool, err error)) error {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	d, err := backend.Load()
	if err != nil {
		return systemError("load contacts", err)
	}
	changed, err := fn(d)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := backend.Save(d); err != nil {
		return systemError("save contacts", err)
	}
	return nil
}

// view loads the directory and passes it to fn along with the backend, for
// read-only commands.
func (a *app) view(fn func(b *sqlite.Backend, d *types.Directory) error) error {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	d, err := backend.Load()
	if err != nil {
		return systemError("load contacts", err)
	}
	return fn(backend, d)
}

// findRecord returns the named record or an error wrapping
// types.ErrRecordNotFound.
func findRecord(d *types.Directory, name string) (*types.Record, error) {
	rec, ok := d.Find(name)
	if !ok {
		return nil, fmt.Errorf("contact %q: %w", name, types.ErrRecordNotFound)
	}
	return rec, nil
}
