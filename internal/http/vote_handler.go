package api

import (
	"encoding/json"
	"net/http"

	"launchboard/internal/domain/vote"
	"launchboard/internal/platform/apperr"
	"launchboard/internal/worker"
)

type voteRequest struct {
	Direction string `json:"direction"`
}

// @Summary     Vote on a product
// @Tags        votes
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      string       true  "Product ID"
// @Param       request  body      voteRequest  true  "Vote payload"
// @Success     200      {object}  vote.Result
// @Failure     400      {object}  map[string]string  "invalid direction"
// @Failure     401      {object}  map[string]string  "not signed in or no organization"
// @Failure     404      {object}  map[string]string  "product not found"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/products/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid product id", err))
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	dir, err := vote.ParseDirection(req.Direction)
	if err != nil {
		errorResponse(w, err)
		return
	}

	id := identityFromCtx(r)

	res, err := h.voteSvc.Vote(r.Context(), productID, dir, id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.voteCh <- worker.VoteEvent{ProductID: productID, UserID: id.UserID, Direction: string(dir)}:
	default:
	}

	writeJSON(w, http.StatusOK, res)
}
