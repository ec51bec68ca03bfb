package theme

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nissyi-gh/taskdeck/internal/storage"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Load returns the saved theme, or Light when nothing valid is stored.
func Load(kv storage.KV) Theme {
	data, ok, err := kv.Get(storage.KeyTheme)
	if err != nil {
		log.Printf("[theme] load: %v", err)
		return Light
	}
	if !ok {
		return Light
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil || (t != Light && t != Dark) {
		return Light
	}
	return t
}

// Save stores t as the preferred theme.
func Save(kv storage.KV, t Theme) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if err := kv.Put(storage.KeyTheme, data); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
