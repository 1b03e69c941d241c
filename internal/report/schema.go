package report

// Schema is the JSON Schema (Draft 2020-12) for the xctag JSON
// output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/jflowers/xctag/attribution-report.schema.json",
  "title": "xctag Attribution Report",
  "description": "Output schema for xctag tag --format=json",
  "type": "object",
  "required": ["version", "files", "summary"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "files": {
      "type": "array",
      "items": { "$ref": "#/$defs/FileEntry" }
    },
    "summary": { "$ref": "#/$defs/Summary" }
  },
  "$defs": {
    "FileEntry": {
      "type": "object",
      "required": ["path", "class", "strategy"],
      "properties": {
        "path": {
          "type": "string",
          "description": "File path relative to the scan root"
        },
        "class": {
          "type": "string",
          "enum": ["Passed", "Failed", "Unknown"],
          "description": "Attributed classification"
        },
        "strategy": {
          "type": "string",
          "enum": ["suite", "xctest", "suite+xctest", "func-unique", "func-collision", "none"],
          "description": "Resolution strategy that produced the classification"
        },
        "tokens": {
          "type": "array",
          "items": { "type": "string" },
          "description": "Candidate tokens the file brought to resolution"
        },
        "statuses": {
          "type": "array",
          "items": {
            "type": "string",
            "enum": ["Failure", "Expected Failure", "Success", "Skipped", "Unknown"]
          },
          "description": "Distinct statuses collected for the file, worst first"
        }
      }
    },
    "Summary": {
      "type": "object",
      "required": ["failed", "passed", "unknown"],
      "properties": {
        "failed":  { "type": "integer", "minimum": 0 },
        "passed":  { "type": "integer", "minimum": 0 },
        "unknown": { "type": "integer", "minimum": 0 }
      }
    }
  }
}`
