package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/validation"
)

func TestUserCreateSchema(t *testing.T) {
	t.Run("valid payload has no issues", func(t *testing.T) {
		issues := validation.UserCreate.Validate(map[string]any{
			"username": "newuser",
			"email":    "newuser@example.com",
			"password": "Password123@",
		})
		assert.Empty(t, issues)
	})

	t.Run("missing required fields reported one issue each", func(t *testing.T) {
		issues := validation.UserCreate.Validate(map[string]any{})
		require.Len(t, issues, 3)
		fields := map[string]bool{}
		for _, issue := range issues {
			fields[issue.Field] = true
		}
		assert.True(t, fields["username"])
		assert.True(t, fields["email"])
		assert.True(t, fields["password"])
	})

	t.Run("invalid email shape", func(t *testing.T) {
		issues := validation.UserCreate.Validate(map[string]any{
			"username": "newuser",
			"email":    "not-an-email",
			"password": "Password123@",
		})
		require.Len(t, issues, 1)
		assert.Equal(t, "email", issues[0].Field)
	})

	t.Run("username length bounds", func(t *testing.T) {
		issues := validation.UserCreate.Validate(map[string]any{
			"username": "ab",
			"email":    "a@b.co",
			"password": "Password123@",
		})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "at least 3")
	})

	t.Run("wrong type reported", func(t *testing.T) {
		issues := validation.UserCreate.Validate(map[string]any{
			"username": 42,
			"email":    "a@b.co",
			"password": "Password123@",
		})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "must be a string")
	})
}

func TestPasswordRules(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		wantIssues int
	}{
		{"all rules satisfied", "Password123@", 0},
		{"too short only", "Pw1@x", 1},
		{"missing uppercase only", "password123@", 1},
		{"missing digit only", "Password@@@", 1},
		{"missing special only", "Password123", 1},
		{"every rule violated", "abc", 4},
		{"empty string still required elsewhere", "", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validation.UserCreate.Validate(map[string]any{
				"username": "someuser",
				"email":    "some@example.com",
				"password": tt.password,
			})
			assert.Len(t, issues, tt.wantIssues)
			for _, issue := range issues {
				assert.Equal(t, "password", issue.Field)
			}
		})
	}
}

func TestUpdateVariantsAreOptional(t *testing.T) {
	t.Run("empty user update is valid", func(t *testing.T) {
		assert.Empty(t, validation.UserUpdate.Validate(map[string]any{}))
	})

	t.Run("provided fields still checked", func(t *testing.T) {
		issues := validation.UserUpdate.Validate(map[string]any{"email": "nope"})
		require.Len(t, issues, 1)
		assert.Equal(t, "email", issues[0].Field)
	})

	t.Run("epic update priority enum still enforced", func(t *testing.T) {
		issues := validation.EpicUpdate.Validate(map[string]any{"priority": "urgent"})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "must be one of")
	})
}

func TestEpicCreateSchema(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		issues := validation.EpicCreate.Validate(map[string]any{
			"title":        "Checkout flow",
			"priority":     "high",
			"project_slug": "webshop",
		})
		assert.Empty(t, issues)
	})

	t.Run("unknown priority rejected", func(t *testing.T) {
		issues := validation.EpicCreate.Validate(map[string]any{
			"title":        "Checkout flow",
			"priority":     "blocker",
			"project_slug": "webshop",
		})
		require.Len(t, issues, 1)
		assert.Equal(t, "priority", issues[0].Field)
	})
}

func TestCommentExactlyOneParent(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		valid   bool
	}{
		{"epic parent only", map[string]any{"content": "hi", "epic_id": float64(1)}, true},
		{"ticket parent only", map[string]any{"content": "hi", "ticket_id": float64(2)}, true},
		{"both parents", map[string]any{"content": "hi", "epic_id": float64(1), "ticket_id": float64(2)}, false},
		{"no parent", map[string]any{"content": "hi"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validation.CommentCreate.Validate(tt.payload)
			if tt.valid {
				assert.Empty(t, issues)
			} else {
				require.Len(t, issues, 1)
				assert.Contains(t, issues[0].Message, "exactly one of")
			}
		})
	}
}

func TestTicketCreateSchema(t *testing.T) {
	t.Run("epic_id must be a positive integer", func(t *testing.T) {
		issues := validation.TicketCreate.Validate(map[string]any{
			"title":   "Fix bug",
			"epic_id": float64(-3),
		})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "positive")
	})

	t.Run("fractional epic_id rejected", func(t *testing.T) {
		issues := validation.TicketCreate.Validate(map[string]any{
			"title":   "Fix bug",
			"epic_id": 1.5,
		})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "integer")
	})
}
