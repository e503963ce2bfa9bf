// Package file keeps user-editable state on disk: settings in a TOML
// file (ConfigStore) and LLM prompt overrides as plain text files
// (PromptStore).
package file
