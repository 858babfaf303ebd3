// Package persist stores the last class/lecture selection per role so a
// board comes back where the user left it.
package persist

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core"
)

const stateFile = "selection.json"

// FileStore keeps selections in a small JSON file under the user's config
// dir (or conf.StateDir when set), one entry per role.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

var _ core.SelectionStore = (*FileStore)(nil)

func NewFileStore(conf *core.Config) (*FileStore, error) {
	dir := conf.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolving user config dir")
		}
		dir = filepath.Join(base, "ubao")
	}
	return &FileStore{path: filepath.Join(dir, stateFile)}, nil
}

func (s *FileStore) Load(role core.Role) (core.Selection, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	selections, err := s.read()
	if err != nil {
		return core.Selection{}, err
	}
	return selections[role], nil // zero Selection when the role has none yet
}

func (s *FileStore) Save(role core.Role, sel core.Selection) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	selections, err := s.read()
	if err != nil {
		return err
	}
	selections[role] = sel

	data, err := json.MarshalIndent(selections, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling selections")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	return errors.Wrap(ioutil.WriteFile(s.path, data, 0o600), "writing selections")
}

func (s *FileStore) read() (map[core.Role]core.Selection, error) {
	selections := make(map[core.Role]core.Selection)
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return selections, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading selections")
	}
	if err := json.Unmarshal(data, &selections); err != nil {
		// a mangled state file should not brick the app; start over
		return make(map[core.Role]core.Selection), nil
	}
	return selections, nil
}
