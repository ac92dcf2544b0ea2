// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files, embedded at compile time and rendered with text/template.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// cache stores parsed prompt files and compiled templates to avoid repeated parsing
var (
	cache     = make(map[string]map[string]string)
	templates = make(map[string]*template.Template)
	cacheMu   sync.RWMutex
)

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "jobad.json").
// Returns an error if the file or key is not found.
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Render executes the prompt filename/key as a template over the named slots in data.
func Render(filename, key string, data any) (string, error) {
	tmpl, err := loadTemplate(filename, key)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

func loadTemplate(filename, key string) (*template.Template, error) {
	id := filename + "/" + key

	cacheMu.RLock()
	if tmpl, exists := templates[id]; exists {
		cacheMu.RUnlock()
		return tmpl, nil
	}
	cacheMu.RUnlock()

	text, err := Get(filename, key)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(id).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %s: %w", id, err)
	}

	cacheMu.Lock()
	templates[id] = tmpl
	cacheMu.Unlock()

	return tmpl, nil
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	// Check cache first
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	// Load from embedded filesystem
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}
