package httpadapter

import "github.com/santhosh-tekuri/jsonschema/v5"

// snapshotSchema is the wire contract for uploads. Validation runs before
// the usecase so a malformed exporter build fails loudly with a 400 instead
// of merging partial garbage.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["server_unix_time", "players"],
  "properties": {
    "server_unix_time": {"type": "integer", "minimum": 0},
    "players": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["user_id"],
        "properties": {
          "user_id": {"type": "integer", "minimum": 1},
          "last_name": {"type": "string"},
          "k": {
            "type": "object",
            "additionalProperties": {"type": "number"}
          },
          "highest_range_kill_m": {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`

var compiledSnapshotSchema = jsonschema.MustCompileString("snapshot.json", snapshotSchema)
