package accounts

import (
	"context"
	"sort"

	"github.com/agentstation/syncnotes/internal/savedvars"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/logging"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// Loader reads one account from disk.
type Loader interface {
	Load(ctx context.Context, path string) (*Account, error)
}

// NewLoader returns a Loader that reads CharacterNotes SavedVariables
// files.
func NewLoader() Loader {
	return &fileLoader{}
}

type fileLoader struct{}

// Load resolves path, decodes the account's notes file and builds its
// snapshot.
func (fl *fileLoader) Load(ctx context.Context, path string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, file, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithAccount(ctx, root)
	logger := logging.FromContext(ctx)
	logger.Debug().Str("file", file).Msg("Loading account")

	doc, err := savedvars.DecodeFileContext(ctx, file)
	if err != nil {
		return nil, err
	}

	input, foreign, warnings := extract(root, doc)
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	snap, err := snapshot.Build(ctx, input)
	if err != nil {
		return nil, errors.WrapResource("load", "account", root, err)
	}
	snap.Warnings = append(snap.Warnings, warnings...)
	sort.Strings(snap.Warnings)

	logger.Info().
		Int("realms", len(snap.Realms)).
		Int("notes", snap.Count()).
		Msg("Account loaded")

	return &Account{
		ID:       root,
		Root:     root,
		File:     file,
		Document: doc,
		Snapshot: snap,
		Foreign:  foreign,
	}, nil
}
