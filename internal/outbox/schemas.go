package outbox

// SchemaCatalogEntry maps event type to schema definition.
type SchemaCatalogEntry struct {
	Schema string
}

var schemaCatalog = map[string]SchemaCatalogEntry{
	"user.created": {
		Schema: userCreatedSchema,
	},
	"exercise.logged": {
		Schema: exerciseLoggedSchema,
	},
}

const userCreatedSchema = `{
  "type": "object",
  "title": "UserCreated",
  "properties": {
    "user_id": {"type": "string"},
    "username": {"type": "string"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["user_id", "username", "occurred_at"],
  "additionalProperties": false
}`

const exerciseLoggedSchema = `{
  "type": "object",
  "title": "ExerciseLogged",
  "properties": {
    "exercise_id": {"type": "string"},
    "user_id": {"type": "string"},
    "description": {"type": "string"},
    "duration_min": {"type": "integer"},
    "date": {"type": "string", "format": "date-time"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["exercise_id", "user_id", "description", "duration_min", "date", "occurred_at"],
  "additionalProperties": false
}`
