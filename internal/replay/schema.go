package replay

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema is the wire contract for replay documents. External
// viewers validate against the same schema.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "recorded_at", "map", "turns", "result"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "recorded_at": {"type": "string"},
    "map": {
      "type": "object",
      "required": ["width", "height", "terrain"],
      "properties": {
        "width": {"type": "integer", "minimum": 1},
        "height": {"type": "integer", "minimum": 1},
        "terrain": {
          "type": "array",
          "items": {
            "type": "array",
            "items": {"type": "string", "enum": ["GRASS", "MOUNTAIN", "SAND", "WATER", "BRIDGE"]}
          }
        }
      }
    },
    "turns": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["turn", "teams"],
        "properties": {
          "turn": {"type": "integer", "minimum": 1},
          "teams": {
            "type": "object",
            "required": ["BLUE", "RED"],
            "additionalProperties": {
              "type": "object",
              "required": ["balance", "time_remaining_seconds", "units", "buildings"],
              "properties": {
                "balance": {"type": "integer"},
                "time_remaining_seconds": {"type": "number", "minimum": 0},
                "forfeited": {"type": "boolean"},
                "units": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["id", "kind", "x", "y", "health"],
                    "properties": {
                      "id": {"type": "integer", "minimum": 0},
                      "kind": {"type": "string"},
                      "x": {"type": "integer", "minimum": 0},
                      "y": {"type": "integer", "minimum": 0},
                      "health": {"type": "integer"},
                      "damage": {"type": "integer"},
                      "defense": {"type": "integer"},
                      "actions_remaining": {"type": "integer", "minimum": 0},
                      "movement_remaining": {"type": "integer", "minimum": 0},
                      "level": {"type": "integer", "minimum": 1}
                    }
                  }
                },
                "buildings": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["id", "kind", "x", "y", "health"],
                    "properties": {
                      "id": {"type": "integer", "minimum": 0},
                      "kind": {"type": "string"},
                      "x": {"type": "integer", "minimum": 0},
                      "y": {"type": "integer", "minimum": 0},
                      "health": {"type": "integer"},
                      "actions_remaining": {"type": "integer", "minimum": 0},
                      "level": {"type": "integer", "minimum": 1}
                    }
                  }
                }
              }
            }
          }
        }
      }
    },
    "result": {
      "type": "object",
      "required": ["winner", "draw", "reason"],
      "properties": {
        "winner": {"type": "string"},
        "draw": {"type": "boolean"},
        "reason": {"type": "string"}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("replay.schema.json", documentSchema)

// Validate checks serialized replay JSON against the document schema.
func Validate(data []byte) error {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("replay is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("replay schema violation: %w", err)
	}
	return nil
}
