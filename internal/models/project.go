package models

import (
	"database/sql"

	"github.com/desertthunder/panelstore/internal/schema"
)

// ProjectTable declares d_projects.
var ProjectTable = schema.NewTable("d_projects",
	schema.PK("id"),
	schema.Col("name", schema.Text),
	schema.Col("owner", schema.Text),
	schema.Col("secret", schema.Text),
	schema.NullCol("options", schema.JSON),
	schema.NullCol("codecs", schema.JSON),
)

// ProjectOptions toggles project behaviour. Nil fields resolve to the defaults of [DefaultProjectOptions].
type ProjectOptions struct {
	CreateAutomatically *bool `json:"create_automatically"`
	AdminMute           *bool `json:"admin_mute"`
	Record              *bool `json:"record"`
}

// DefaultProjectOptions returns create_automatically=true, admin_mute=false, record=false.
func DefaultProjectOptions() ProjectOptions {
	return ProjectOptions{}.WithDefaults()
}

// WithDefaults fills every unset field with its default.
func (o ProjectOptions) WithDefaults() ProjectOptions {
	return ProjectOptions{
		CreateAutomatically: orDefault(o.CreateAutomatically, true),
		AdminMute:           orDefault(o.AdminMute, false),
		Record:              orDefault(o.Record, false),
	}
}

// ProjectCodecs selects the media codecs enabled for a project.
type ProjectCodecs struct {
	H264 *bool `json:"h264"`
	VP9  *bool `json:"vp9"`
	Opus *bool `json:"opus"`
	AAC  *bool `json:"aac"`
}

// DefaultProjectCodecs returns h264=true, vp9=false, opus=true, aac=false.
func DefaultProjectCodecs() ProjectCodecs {
	return ProjectCodecs{}.WithDefaults()
}

// WithDefaults fills every unset field with its default.
func (c ProjectCodecs) WithDefaults() ProjectCodecs {
	return ProjectCodecs{
		H264: orDefault(c.H264, true),
		VP9:  orDefault(c.VP9, false),
		Opus: orDefault(c.Opus, true),
		AAC:  orDefault(c.AAC, false),
	}
}

// Project is a media project owned by a user.
//
// Options and Codecs are always resolved: values missing from storage carry their defaults.
type Project struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Owner   string         `json:"owner"`
	Secret  string         `json:"secret"`
	Options ProjectOptions `json:"options"`
	Codecs  ProjectCodecs  `json:"codecs"`

	rawOptions sql.NullString
	rawCodecs  sql.NullString
}

// ProjectHook assigns a new identifier on create. Updates have no hook logic yet.
func ProjectHook() Hook[Project] {
	return HookFuncs[Project]{
		Create: assignID(func(p *Project) *string { return &p.ID }),
	}
}

func (p *Project) Table() *schema.Table { return ProjectTable }

func (p *Project) Values() ([]any, error) {
	options, err := encodeBlob("options", p.Options)
	if err != nil {
		return nil, err
	}
	codecs, err := encodeBlob("codecs", p.Codecs)
	if err != nil {
		return nil, err
	}
	return []any{p.ID, p.Name, p.Owner, p.Secret, options, codecs}, nil
}

func (p *Project) Targets() []any {
	return []any{&p.ID, &p.Name, &p.Owner, &p.Secret, &p.rawOptions, &p.rawCodecs}
}

func (p *Project) Decode() error {
	var options ProjectOptions
	if err := decodeBlob("options", p.rawOptions, &options); err != nil {
		return err
	}
	var codecs ProjectCodecs
	if err := decodeBlob("codecs", p.rawCodecs, &codecs); err != nil {
		return err
	}
	p.Options = options.WithDefaults()
	p.Codecs = codecs.WithDefaults()
	return nil
}
