package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/auth"
	"github.com/atlasboard/tracker-service/internal/domain"
)

type fakeCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*domain.Comment{}, nextID: 1}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return comment, nil
}

func (r *fakeCommentRepo) List(_ context.Context) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0, len(r.comments))
	for _, comment := range r.comments {
		out = append(out, *comment)
	}
	return out, nil
}

func (r *fakeCommentRepo) ListByEpic(_ context.Context, epicID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.EpicID != nil && *comment.EpicID == epicID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID != nil && *comment.TicketID == ticketID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

type fakeEpicRepo struct {
	epics map[int64]*domain.Epic
}

func (r *fakeEpicRepo) Create(_ context.Context, epic *domain.Epic) error {
	r.epics[epic.ID] = epic
	return nil
}

func (r *fakeEpicRepo) Update(_ context.Context, epic *domain.Epic) error {
	if _, ok := r.epics[epic.ID]; !ok {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fakeEpicRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.epics[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.epics, id)
	return nil
}

func (r *fakeEpicRepo) GetByID(_ context.Context, id int64) (*domain.Epic, error) {
	epic, ok := r.epics[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return epic, nil
}

func (r *fakeEpicRepo) List(_ context.Context) ([]domain.Epic, error) { return nil, nil }

func (r *fakeEpicRepo) ListByProject(_ context.Context, _ string) ([]domain.Epic, error) {
	return nil, nil
}

type fakeTicketRepo struct {
	tickets map[int64]*domain.Ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ticket, nil
}

func (r *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) { return nil, nil }

func (r *fakeTicketRepo) ListByEpic(_ context.Context, _ int64) ([]domain.Ticket, error) {
	return nil, nil
}

func withTestClaims(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("auth_claims", &auth.Claims{UserID: userID, Username: "morgan"})
		return c.Next()
	}
}

func newCommentsApp(comments *fakeCommentRepo, epics *fakeEpicRepo, tickets *fakeTicketRepo) *fiber.App {
	app := newTestApp()
	handler := NewCommentsHandler(comments, epics, tickets)
	app.Use(withTestClaims("u-1"))
	app.Post("/comments", handler.Create)
	app.Get("/comments", handler.List)
	app.Get("/comments/:id", handler.Get)
	app.Get("/epics/:id/comments", handler.ListByEpic)
	app.Get("/tickets/:id/comments", handler.ListByTicket)
	return app
}

func TestCommentsHandlerCreate(t *testing.T) {
	epics := &fakeEpicRepo{epics: map[int64]*domain.Epic{7: {ID: 7, Title: "login flow"}}}
	tickets := &fakeTicketRepo{tickets: map[int64]*domain.Ticket{3: {ID: 3, Title: "fix redirect"}}}

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name:       "comment on epic",
			payload:    map[string]any{"content": "looks good", "epic_id": 7},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "comment on ticket",
			payload:    map[string]any{"content": "needs a repro", "ticket_id": 3},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "both parents rejected",
			payload:    map[string]any{"content": "hi", "epic_id": 7, "ticket_id": 3},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "no parent rejected",
			payload:    map[string]any{"content": "hi"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown epic rejected",
			payload:    map[string]any{"content": "hi", "epic_id": 99},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown ticket rejected",
			payload:    map[string]any{"content": "hi", "ticket_id": 99},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newCommentsApp(newFakeCommentRepo(), epics, tickets)
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/comments", tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestCommentsHandlerCreateSetsCreator(t *testing.T) {
	comments := newFakeCommentRepo()
	epics := &fakeEpicRepo{epics: map[int64]*domain.Epic{7: {ID: 7}}}
	tickets := &fakeTicketRepo{tickets: map[int64]*domain.Ticket{}}
	app := newCommentsApp(comments, epics, tickets)

	payload := map[string]any{"content": "first", "epic_id": 7}
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/comments", payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, comments.comments, 1)
	created := comments.comments[1]
	assert.Equal(t, "u-1", created.CreatorID)
	require.NotNil(t, created.EpicID)
	assert.EqualValues(t, 7, *created.EpicID)
	assert.Nil(t, created.TicketID)
}

func TestCommentsHandlerList(t *testing.T) {
	comments := newFakeCommentRepo()
	epicID := int64(7)
	ticketID := int64(3)
	comments.comments[1] = &domain.Comment{ID: 1, Content: "a", EpicID: &epicID}
	comments.comments[2] = &domain.Comment{ID: 2, Content: "b", TicketID: &ticketID}
	comments.nextID = 3

	epics := &fakeEpicRepo{epics: map[int64]*domain.Epic{}}
	tickets := &fakeTicketRepo{tickets: map[int64]*domain.Ticket{}}
	app := newCommentsApp(comments, epics, tickets)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 2)
}

func TestCommentsHandlerListByParent(t *testing.T) {
	comments := newFakeCommentRepo()
	epicID := int64(7)
	ticketID := int64(3)
	comments.comments[1] = &domain.Comment{ID: 1, Content: "a", EpicID: &epicID}
	comments.comments[2] = &domain.Comment{ID: 2, Content: "b", TicketID: &ticketID}
	comments.nextID = 3

	epics := &fakeEpicRepo{epics: map[int64]*domain.Epic{7: {ID: 7}}}
	tickets := &fakeTicketRepo{tickets: map[int64]*domain.Ticket{3: {ID: 3}}}
	app := newCommentsApp(comments, epics, tickets)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/epics/7/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 1)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/tickets/3/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 1)
}
