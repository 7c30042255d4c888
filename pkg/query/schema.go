package query

// payloadSchema is the JSON Schema every inbound execution-graph payload
// must satisfy before it is decoded. It enforces only the wire-level shape
// (every node has an id, sources are strings); semantic validation (cycles,
// duplicate ids, filter syntax) is the planner's job, not the schema's.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nodes"],
  "properties": {
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"type": "string"},
          "sources": {
            "type": "array",
            "items": {"type": "string"}
          },
          "pushDown": {"type": "boolean"},
          "joins": {"type": "boolean"},
          "sourceId": {"type": "string"}
        }
      }
    },
    "sinkFilters": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`
