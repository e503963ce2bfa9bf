// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TemplateStore: Template persistence
//   - DocumentStore: Generated document metadata persistence
//   - OutputStore: Generated file storage in the output directory
//   - FormatRegistry: Output format renderers (txt, pdf, docx)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, AI field suggestions are disabled.
//   - FieldSuggester: Maps unrecognised input fields to canonical keys.
//   - TemplateLoader: Imports templates from a directory of files.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
