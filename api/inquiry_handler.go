package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpupo63/hospitality-studio-backend/database"
	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/metrics"
	"github.com/rpupo63/hospitality-studio-backend/models"
	"github.com/rpupo63/hospitality-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxInquiryBodyBytes = 1 << 20

type inquiryHandler struct {
	responder   Responder
	logger      zerolog.Logger
	inquiryRepo *database.InquiryRepo
	notifier    services.InquiryNotifier
}

func newInquiryHandler(inquiryRepo *database.InquiryRepo, notifier services.InquiryNotifier) inquiryHandler {
	logger := log.With().Str("handlerName", "inquiryHandler").Logger()
	if notifier == nil {
		notifier = services.NoopNotifier{}
	}

	return inquiryHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
	}
}

// createInquiry validates a contact-form submission and stores it
// @Router /api/inquiries [post]
func (h inquiryHandler) createInquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(w, r, maxInquiryBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		inquiry, err := models.ValidateInquiry(raw)
		if err != nil {
			var verr *errs.ValidationError
			if errors.As(err, &verr) {
				metrics.RecordInquiryRejected(verr.Fields())
			}
			h.responder.WriteError(w, err)
			return
		}

		id, err := h.inquiryRepo.Add(r.Context(), inquiry)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to store inquiry")
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("inquiryId", id).Msg("inquiry stored")
		services.NotifyAsync(r.Context(), h.notifier, id, inquiry)

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, createInquiryResponse{Ok: true, ID: id})
	}
}

// listInquiries returns the most recent inquiries, newest first
// @Router /api/inquiries [get]
func (h inquiryHandler) listInquiries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be an integer"))
				return
			}
			limit = n
		}

		docs, err := h.inquiryRepo.FindRecent(r.Context(), limit)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list inquiries")
			h.responder.WriteError(w, err)
			return
		}
		if docs == nil {
			docs = []models.Document{}
		}

		h.responder.WriteJSON(w, listInquiriesResponse{Ok: true, Items: docs})
	}
}

// decodeObject reads a single JSON object from the request body.
func decodeObject(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]any, error) {
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return nil, errs.NewMaxBodySizeExceededError(maxBytes)
		case errors.As(err, &typeErr):
			return nil, errs.NewMalformedPayloadError("inquiry", err)
		default:
			return nil, errs.NewInvalidJSONError(err)
		}
	}
	if raw == nil {
		return nil, errs.NewMalformedPayloadError("inquiry", errors.New("body must be a JSON object"))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errs.NewInvalidJSONError(errors.New("unexpected data after JSON object"))
	}
	return raw, nil
}
