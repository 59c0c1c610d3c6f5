package catalog

// catalogSchemaJSON is the JSON Schema a council.yaml overlay file is
// validated against before decoding.
const catalogSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "council.yaml",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "backends": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "model"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "model": {"type": "string", "minLength": 1},
          "provider": {"type": "string"},
          "tier": {"enum": ["premium", "standard", "fast"]},
          "description": {"type": "string"},
          "cost_factor": {"type": "number", "exclusiveMinimum": 0}
        }
      }
    },
    "profiles": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "media_type": {"type": "string"},
          "outlet": {"type": "string"},
          "focus_areas": {"type": "array", "items": {"type": "string"}},
          "tone": {"type": "string"},
          "description": {"type": "string"},
          "severity_base": {"type": "integer", "minimum": 1, "maximum": 5}
        }
      }
    },
    "presets": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "writers", "editor"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "writers": {"type": "array", "items": {"type": "string"}, "minItems": 1},
          "assignments": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["backend", "profile"],
              "additionalProperties": false,
              "properties": {
                "backend": {"type": "string", "minLength": 1},
                "profile": {"type": "string", "minLength": 1}
              }
            }
          },
          "editor": {"type": "string", "minLength": 1},
          "estimated_minutes": {"type": "integer", "minimum": 0},
          "estimated_cost": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`
