package users

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/server/models"
)

// encodeUsers renders the collection as a 2-space indented JSON array with
// no trailing newline. HTML characters are written as-is.
func encodeUsers(users []models.User) ([]byte, error) {
	if users == nil {
		users = []models.User{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(users); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeUsers treats blank content and a JSON null as an empty collection.
func decodeUsers(data []byte) ([]models.User, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return []models.User{}, fmt.Errorf("%w: %w", common.ErrCorruptStore, err)
	}
	if users == nil {
		users = []models.User{}
	}

	return users, nil
}
