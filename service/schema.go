package service

import (
	"fmt"
	"strconv"

	"dugout/models"
)

// EntityKind identifies which configurable record a field belongs to
type EntityKind string

const (
	EntityChannel EntityKind = "channel"
	EntityServer  EntityKind = "server"
)

// FieldType is the declared type of a config field
type FieldType string

const (
	FieldTypeBool FieldType = "bool"
	FieldTypeInt  FieldType = "int"
)

// ConfigField declares one named, typed, validated setting on a record of
// type T. The entries form a closed dispatch table: a field name supplied
// at runtime either resolves to one of them or is rejected as
// ErrUnknownField, there is no open-ended binding. Reads go through the
// get closure; writes address the field's own column so two writers on
// the same record never overwrite each other's fields.
type ConfigField[T any] struct {
	Name     string
	Column   string
	Type     FieldType
	Default  any
	validate func(value any) error
	get      func(record *T) any
}

// Parse converts a raw string from the command layer into the field's
// declared type
func (f *ConfigField[T]) Parse(raw string) (any, error) {
	switch f.Type {
	case FieldTypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
		}
		return v, nil
	case FieldTypeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: field %s has unsupported type %s", ErrInvalidValue, f.Name, f.Type)
	}
}

// Validate checks a parsed value against the field's range
func (f *ConfigField[T]) Validate(value any) error {
	if f.validate == nil {
		return nil
	}
	return f.validate(value)
}

func intRange(min, max int64) func(value any) error {
	return func(value any) error {
		v, ok := value.(int64)
		if !ok {
			return fmt.Errorf("%w: expected an integer", ErrInvalidValue)
		}
		if v < min || v > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidValue, min, max)
		}
		return nil
	}
}

// channelFields is the schema for per-channel settings. Order matters for
// display; defaults mirror the column defaults in the channels table.
var channelFields = []*ConfigField[models.Channel]{
	{
		Name:    "onlyScoringPlays",
		Column:  "only_scoring_plays",
		Type:    FieldTypeBool,
		Default: false,
		get:     func(c *models.Channel) any { return c.OnlyScoringPlays },
	},
	{
		Name:    "gameAdvisories",
		Column:  "game_advisories",
		Type:    FieldTypeBool,
		Default: true,
		get:     func(c *models.Channel) any { return c.GameAdvisories },
	},
	{
		Name:     "inPlayDelay",
		Column:   "in_play_delay",
		Type:     FieldTypeInt,
		Default:  int64(13),
		validate: intRange(0, 300),
		get:      func(c *models.Channel) any { return c.InPlayDelay },
	},
	{
		Name:     "noPlayDelay",
		Column:   "no_play_delay",
		Type:     FieldTypeInt,
		Default:  int64(18),
		validate: intRange(0, 300),
		get:      func(c *models.Channel) any { return c.NoPlayDelay },
	},
	{
		Name:    "showScoreOnOut3",
		Column:  "show_score_on_out3",
		Type:    FieldTypeBool,
		Default: true,
		get:     func(c *models.Channel) any { return c.ShowScoreOnOut3 },
	},
}

// serverFields is the schema for per-server settings
var serverFields = []*ConfigField[models.Server]{
	{
		Name:     "teamId",
		Column:   "team_id",
		Type:     FieldTypeInt,
		Default:  int64(0),
		validate: intRange(0, 1<<31-1),
		get:      func(s *models.Server) any { return s.TeamID },
	},
}

var (
	channelFieldsByName = make(map[string]*ConfigField[models.Channel], len(channelFields))
	serverFieldsByName  = make(map[string]*ConfigField[models.Server], len(serverFields))
)

func init() {
	for _, f := range channelFields {
		channelFieldsByName[f.Name] = f
	}
	for _, f := range serverFields {
		serverFieldsByName[f.Name] = f
	}
}

func channelField(name string) (*ConfigField[models.Channel], error) {
	f, ok := channelFieldsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a channel setting", ErrUnknownField, name)
	}
	return f, nil
}

func serverField(name string) (*ConfigField[models.Server], error) {
	f, ok := serverFieldsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a server setting", ErrUnknownField, name)
	}
	return f, nil
}

// FieldNames returns the ordered field names configurable on an entity
// kind. Used by the command layer for help text and option choices.
func FieldNames(kind EntityKind) []string {
	switch kind {
	case EntityChannel:
		names := make([]string, len(channelFields))
		for i, f := range channelFields {
			names[i] = f.Name
		}
		return names
	case EntityServer:
		names := make([]string, len(serverFields))
		for i, f := range serverFields {
			names[i] = f.Name
		}
		return names
	default:
		return nil
	}
}
