package accounts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/errors"
)

// Resolve maps a user supplied account path to the account root and its
// notes file. The path may name the account directory or the notes file
// itself. A leading ':' left over from the legacy "-a:<path>" argument
// form is ignored.
func Resolve(path string) (root, file string, err error) {
	path = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(path), ":"))
	if path == "" {
		return "", "", errors.NewValidationError("account", path, "account path is required")
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.NewNotFoundError("account", path)
		}
		return "", "", errors.WrapIO("stat", path, err)
	}

	if info.IsDir() {
		return path, filepath.Join(path, constants.SavedVariablesDir, constants.NotesFileName), nil
	}

	if !strings.EqualFold(filepath.Ext(path), ".lua") {
		return "", "", errors.NewValidationError("account", path, "must be an account directory or a .lua file")
	}

	root = filepath.Dir(path)
	if strings.EqualFold(filepath.Base(root), constants.SavedVariablesDir) {
		root = filepath.Dir(root)
	}
	return root, path, nil
}
