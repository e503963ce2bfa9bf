// Package driving declares the operations the CLI, TUI and MCP server call
// on the core: generation and preview, template management, the generated
// document log and settings. internal/core/services implements them.
package driving
