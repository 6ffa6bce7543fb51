package validation

import "github.com/atlasboard/tracker-service/internal/domain"

// Per-entity schemas. Create variants list the full rule set; update variants
// are derived once here so partial updates share the same constraints.
var (
	UserCreate = Schema{
		Entity: "user",
		Fields: []FieldRule{
			{Name: "username", Kind: KindString, Required: true, MinLen: 3, MaxLen: 50},
			{Name: "email", Kind: KindEmail, Required: true, MaxLen: 254},
			{Name: "password", Kind: KindPassword, Required: true},
			{Name: "position", Kind: KindString, MaxLen: 100},
			{Name: "teams", Kind: KindStringSlice},
		},
	}
	UserUpdate = UserCreate.Optional()

	Login = Schema{
		Entity: "login",
		Fields: []FieldRule{
			{Name: "email", Kind: KindEmail, Required: true},
			{Name: "password", Kind: KindString, Required: true, MinLen: 1},
		},
	}

	TeamCreate = Schema{
		Entity: "team",
		Fields: []FieldRule{
			{Name: "name", Kind: KindString, Required: true, MinLen: 2, MaxLen: 100},
			{Name: "members", Kind: KindStringSlice},
		},
	}
	TeamUpdate = TeamCreate.Optional()

	ProjectCreate = Schema{
		Entity: "project",
		Fields: []FieldRule{
			{Name: "name", Kind: KindString, Required: true, MinLen: 2, MaxLen: 100},
			{Name: "description", Kind: KindString, MaxLen: 2000},
			{Name: "status", Kind: KindString, MaxLen: 50},
			{Name: "teams", Kind: KindStringSlice},
		},
	}
	ProjectUpdate = ProjectCreate.Optional()

	EpicCreate = Schema{
		Entity: "epic",
		Fields: []FieldRule{
			{Name: "title", Kind: KindString, Required: true, MinLen: 2, MaxLen: 200},
			{Name: "description", Kind: KindString, MaxLen: 5000},
			{Name: "priority", Kind: KindEnum, Enum: domain.Priorities()},
			{Name: "status", Kind: KindString, MaxLen: 50},
			{Name: "project_slug", Kind: KindString, Required: true, MinLen: 1, MaxLen: 100},
			{Name: "assignee_id", Kind: KindString, MaxLen: 36},
		},
	}
	EpicUpdate = EpicCreate.Optional()

	TicketCreate = Schema{
		Entity: "ticket",
		Fields: []FieldRule{
			{Name: "title", Kind: KindString, Required: true, MinLen: 2, MaxLen: 200},
			{Name: "description", Kind: KindString, MaxLen: 5000},
			{Name: "priority", Kind: KindEnum, Enum: domain.Priorities()},
			{Name: "status", Kind: KindString, MaxLen: 50},
			{Name: "epic_id", Kind: KindInt, Required: true},
			{Name: "assignee_id", Kind: KindString, MaxLen: 36},
		},
	}
	TicketUpdate = TicketCreate.Optional()

	CommentCreate = Schema{
		Entity: "comment",
		Fields: []FieldRule{
			{Name: "content", Kind: KindString, Required: true, MinLen: 1, MaxLen: 5000},
			{Name: "epic_id", Kind: KindInt},
			{Name: "ticket_id", Kind: KindInt},
		},
		ExactlyOne: []string{"epic_id", "ticket_id"},
	}
	CommentUpdate = Schema{
		Entity: "comment",
		Fields: []FieldRule{
			{Name: "content", Kind: KindString, MinLen: 1, MaxLen: 5000},
		},
	}

	StatusCreate = Schema{
		Entity: "status",
		Fields: []FieldRule{
			{Name: "name", Kind: KindString, Required: true, MinLen: 2, MaxLen: 50},
		},
	}
)
