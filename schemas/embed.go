// Package schemas holds the JSON Schema files shipped with the resume builder.
package schemas

import _ "embed"

// ResumeDocumentFile is the file name of the snapshot schema.
const ResumeDocumentFile = "resume_document.schema.json"

// ResumeDocument is the JSON Schema for persisted resume snapshots.
//
//go:embed resume_document.schema.json
var ResumeDocument string
