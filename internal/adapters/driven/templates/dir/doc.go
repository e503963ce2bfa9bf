// Package dir loads document templates from a directory of text files.
//
// Each file may start with a YAML front matter block delimited by "---" lines:
//
//	---
//	name: Service contract
//	document_type: Contrat de prestation
//	category: legal
//	---
//	Client: {{client_name}}
//
// Without front matter the file name (minus extension) is the template name.
// Template IDs are derived from the name so re-importing a file updates the
// stored template instead of duplicating it.
package dir
