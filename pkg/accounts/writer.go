package accounts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/syncnotes/internal/savedvars"
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/logging"
)

// Writer applies a changeset to an account.
type Writer interface {
	Write(ctx context.Context, acct *Account, changeset *differ.Changeset) error
}

// Compile-time interface checks.
var (
	_ Writer = (*FileWriter)(nil)
	_ Writer = (*Reporter)(nil)
)

// FileWriter rewrites the account's notes file. Each write replaces the
// file in one rename, so a failed write leaves the previous file intact.
type FileWriter struct {
	backup bool
}

// WriterOption configures a FileWriter.
type WriterOption func(*FileWriter)

// WithBackup controls whether the previous file is kept as <file>.bak.
func WithBackup(enabled bool) WriterOption {
	return func(w *FileWriter) {
		w.backup = enabled
	}
}

// NewFileWriter creates a FileWriter. Backups are on by default.
func NewFileWriter(opts ...WriterOption) *FileWriter {
	w := &FileWriter{backup: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write applies changeset to the account document and replaces the file.
// On success the account's Document and Snapshot reflect the new state.
func (w *FileWriter) Write(ctx context.Context, acct *Account, changeset *differ.Changeset) error {
	if !changeset.HasChanges() {
		return nil
	}
	if acct == nil || acct.Document == nil {
		return errors.NewValidationError("account", nil, "account has no decoded document")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := logging.FromContext(logging.WithAccount(ctx, acct.ID))

	changeset = changeset.Filter(func(realm string, inst differ.Instruction) bool {
		if inst.Action != differ.ActionUpsert || !acct.IsForeign(realm, inst.Player) {
			return true
		}
		logger.Warn().
			Str("realm", realm).
			Str("player", inst.Player).
			Msg("Entry holds data syncnotes does not own, leaving it unchanged")
		return false
	})
	if !changeset.HasChanges() {
		return nil
	}

	next := acct.Document.Clone()
	applyChangeset(next, changeset)

	data, err := savedvars.Marshal(next)
	if err != nil {
		return errors.NewResourceError("encode", "account", acct.ID, err)
	}

	if w.backup {
		if err := copyFile(acct.File, acct.File+constants.BackupSuffix); err != nil {
			return err
		}
		logger.Debug().Str("backup", acct.File+constants.BackupSuffix).Msg("Backup written")
	}

	if err := writeAtomic(acct.File, data); err != nil {
		return err
	}

	acct.Document = next
	if acct.Snapshot != nil {
		acct.Snapshot = differ.Apply(acct.Snapshot, changeset)
	}

	logger.Info().
		Int("added", changeset.Summary.Added).
		Int("updated", changeset.Summary.Updated).
		Int("removed", changeset.Summary.Removed).
		Str("file", acct.File).
		Msg("Account updated")

	return nil
}

// applyChangeset mutates doc so its realm tables match the changeset.
// Missing realm, notes and ratings tables are created on demand. Removals
// only delete scalar entries.
func applyChangeset(doc *savedvars.Document, changeset *differ.Changeset) {
	realms := doc.Table(constants.NotesGlobal).Child(constants.RealmTableKey)

	for _, rc := range changeset.Realms {
		realm := realms.Child(rc.Realm)

		for _, inst := range rc.Instructions {
			switch inst.Action {
			case differ.ActionUpsert:
				if inst.Note == nil {
					continue
				}
				realm.Child(constants.NotesTableKey).Set(inst.Player, inst.Note.Detail)
				if v, ok := inst.Note.Rating.Value(); ok {
					realm.Child(constants.RatingsTableKey).Set(inst.Player, float64(v))
				} else {
					deleteScalar(realm, constants.RatingsTableKey, inst.Player)
				}

			case differ.ActionRemove:
				deleteScalar(realm, constants.NotesTableKey, inst.Player)
				deleteScalar(realm, constants.RatingsTableKey, inst.Player)
			}
		}
	}
}

// deleteScalar removes player from the realm's key table when it holds a
// string or number.
func deleteScalar(realm savedvars.Table, key, player string) {
	t, ok := realm.Table(key)
	if !ok {
		return
	}
	if v, ok := t[player]; ok && isScalar(v) {
		t.Delete(player)
	}
}

// writeAtomic replaces path with data through a temp file in the same
// directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("sync", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// copyFile copies src to dst. A missing src is not an error.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapIO("read", src, err)
	}
	if err := os.WriteFile(dst, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", dst, err)
	}
	return nil
}

// Reporter is the simulation Writer: it reports every instruction and
// touches nothing.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter printing to out. A nil out only logs.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Write reports the changeset for acct.
func (r *Reporter) Write(ctx context.Context, acct *Account, changeset *differ.Changeset) error {
	if !changeset.HasChanges() {
		return nil
	}

	id := changeset.Account
	if acct != nil {
		id = acct.ID
	}
	logger := logging.FromContext(logging.WithAccount(ctx, id))

	for _, rc := range changeset.Realms {
		for _, inst := range rc.Instructions {
			logger.Info().
				Str("realm", rc.Realm).
				Str("player", inst.Player).
				Str("action", string(inst.Action)).
				Msg("Simulated write")
		}
	}

	if r.out != nil {
		fmt.Fprintf(r.out, "\n%s\n", id)
		changeset.Print(r.out)
	}
	return nil
}
