// Ledger HTTP handlers.
//
// This file exposes the read-only admin endpoints:
//   - GET /stats                      (aggregate statistics)
//   - GET /participants               (list, paginated, ordered by user id)
//   - GET /participants/{id}          (one participant)
//   - GET /participants/{id}/entries  (draw entries for one participant)
//   - GET /config                     (giveaway configuration)
//
// User ids are rendered as strings so that 64-bit snowflakes survive
// JavaScript clients.
package handlers

import (
	"maps"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/stats"
	"github.com/tbourn/giveaway-ledger/internal/tickets"
	"github.com/tbourn/giveaway-ledger/internal/utils"
)

// Ledger is the read side of the ledger cache consumed by the handlers.
// Implementations must be safe for concurrent use and return copies.
type Ledger interface {
	Statistics() stats.Statistics
	Participants() map[int64]domain.Participant
	Participant(id int64) (domain.Participant, bool)
	Snapshot() domain.Snapshot
}

// Handlers groups the admin endpoints.
type Handlers struct {
	ledger Ledger
}

// New constructs a Handlers bound to l.
func New(l Ledger) *Handlers {
	return &Handlers{ledger: l}
}

//
// DTOs
//

// ParticipantView is the JSON shape of one participant.
type ParticipantView struct {
	ID           string                 `json:"id"`
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	Tickets      domain.TicketBreakdown `json:"tickets"`
	TotalTickets int                    `json:"total_tickets"`
	MessageID    int64                  `json:"message_id"`
	Timestamp    domain.Timestamp       `json:"timestamp"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ListParticipantsResponse wraps a page of participants.
type ListParticipantsResponse struct {
	Participants []ParticipantView `json:"participants"`
	Pagination   Pagination        `json:"pagination"`
}

// EntriesResponse lists the draw lines of one participant.
type EntriesResponse struct {
	ID      string   `json:"id"`
	Count   int      `json:"count"`
	Entries []string `json:"entries"`
}

// ConfigResponse is the giveaway configuration without participant data.
type ConfigResponse struct {
	BonusRoles       map[string]domain.BonusRole `json:"bonus_roles"`
	Tag              domain.TagConfig            `json:"tag"`
	Hashtag          domain.HashtagConfig        `json:"hashtag"`
	ChatLock         domain.ChatLock             `json:"chat_lock"`
	InscricaoChannel *int64                      `json:"inscricao_channel"`
	InscricoesClosed bool                        `json:"inscricoes_closed"`
	ButtonMessageID  domain.ButtonMessages       `json:"button_message_id"`
	Moderators       []int64                     `json:"moderators"`
	BlacklistCount   int                         `json:"blacklist_count"`
}

//
// Helpers
//

func view(id int64, p domain.Participant) ParticipantView {
	return ParticipantView{
		ID:           strconv.FormatInt(id, 10),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Tickets:      p.Tickets,
		TotalTickets: p.Tickets.Total(),
		MessageID:    p.MessageID,
		Timestamp:    p.Timestamp,
	}
}

// participant resolves the :id path param, writing the error response itself
// when the id is malformed or unknown.
func (h *Handlers) participant(c *gin.Context) (int64, domain.Participant, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidID, "participant id must be an integer")
		return 0, domain.Participant{}, false
	}
	p, found := h.ledger.Participant(id)
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "participant not found")
		return 0, domain.Participant{}, false
	}
	return id, p, true
}

//
// Handlers
//

// Stats godoc
// @ID          getStats
// @Summary     Aggregate statistics
// @Tags        Ledger
// @Produce     json
// @Success     200  {object}  stats.Statistics
// @Router      /stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	ok(c, http.StatusOK, h.ledger.Statistics())
}

// ListParticipants godoc
// @ID          listParticipants
// @Summary     List participants (paginated)
// @Description Returns a page of participants ordered by user id. Pages past the end are empty.
// @Tags        Participants
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(500) default(50)
//
// @Success     200  {object}  handlers.ListParticipantsResponse
// @Router      /participants [get]
func (h *Handlers) ListParticipants(c *gin.Context) {
	all := h.ledger.Participants()
	ids := slices.Sorted(maps.Keys(all))
	pg := utils.ParsePage(c.Query("page"), c.Query("page_size"), len(ids))

	items := make([]ParticipantView, 0, pg.End-pg.Offset)
	for _, id := range ids[pg.Offset:pg.End] {
		items = append(items, view(id, all[id]))
	}

	ok(c, http.StatusOK, ListParticipantsResponse{
		Participants: items,
		Pagination: Pagination{
			Page:       pg.Number,
			PageSize:   pg.Size,
			Total:      pg.Total,
			TotalPages: pg.TotalPages,
			HasNext:    pg.HasNext(),
		},
	})
}

// GetParticipant godoc
// @ID          getParticipant
// @Summary     Get one participant
// @Tags        Participants
// @Produce     json
// @Param       id   path      string  true  "User id"
// @Success     200  {object}  handlers.ParticipantView
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /participants/{id} [get]
func (h *Handlers) GetParticipant(c *gin.Context) {
	id, p, found := h.participant(c)
	if !found {
		return
	}
	ok(c, http.StatusOK, view(id, p))
}

// ParticipantEntries godoc
// @ID          getParticipantEntries
// @Summary     Draw entries of one participant
// @Description Returns the draw lines of one participant: the full name once, then one line per ticket.
// @Tags        Participants
// @Produce     json
// @Param       id   path      string  true  "User id"
// @Success     200  {object}  handlers.EntriesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /participants/{id}/entries [get]
func (h *Handlers) ParticipantEntries(c *gin.Context) {
	id, p, found := h.participant(c)
	if !found {
		return
	}
	entries := tickets.Entries(p.FirstName, p.LastName, p.Tickets)
	ok(c, http.StatusOK, EntriesResponse{
		ID:      strconv.FormatInt(id, 10),
		Count:   len(entries),
		Entries: entries,
	})
}

// Config godoc
// @ID          getConfig
// @Summary     Giveaway configuration
// @Description Returns bonus roles, tag, hashtag, chat lock and registration state. Participant data is not included.
// @Tags        Ledger
// @Produce     json
// @Success     200  {object}  handlers.ConfigResponse
// @Router      /config [get]
func (h *Handlers) Config(c *gin.Context) {
	s := h.ledger.Snapshot()
	ok(c, http.StatusOK, ConfigResponse{
		BonusRoles:       s.BonusRoles,
		Tag:              s.Tag,
		Hashtag:          s.Hashtag,
		ChatLock:         s.ChatLock,
		InscricaoChannel: s.InscricaoChannel,
		InscricoesClosed: s.InscricoesClosed,
		ButtonMessageID:  s.ButtonMessageID,
		Moderators:       s.Moderators,
		BlacklistCount:   len(s.Blacklist),
	})
}
