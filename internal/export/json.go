package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// WriteJSON serializes a statement (or consolidated statement) to an
// indented JSON file.
func WriteJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal json")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
