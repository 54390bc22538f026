// Package http provides the HTTP API for browsing publication types,
// listing indexed publications, and validating records.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/artpar/pubforge/adapters/metrics"
	"github.com/artpar/pubforge/core/index"
	"github.com/artpar/pubforge/core/registry"
	"github.com/artpar/pubforge/core/schema"
	"github.com/artpar/pubforge/core/validation"
	"github.com/artpar/pubforge/domain/document"
	"github.com/artpar/pubforge/pkg/jsonapi"
	"github.com/artpar/pubforge/ports"
)

// APIHandler serves the read-only publication API.
type APIHandler struct {
	registry  *registry.Registry
	index     *index.Index
	docs      ports.DocumentStore
	vocab     ports.VocabularyStore
	validator *validation.Validator
	metrics   *metrics.Collector
	logger    zerolog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(
	reg *registry.Registry,
	idx *index.Index,
	docs ports.DocumentStore,
	vocab ports.VocabularyStore,
	validator *validation.Validator,
	logger zerolog.Logger,
) *APIHandler {
	return &APIHandler{
		registry:  reg,
		index:     idx,
		docs:      docs,
		vocab:     vocab,
		validator: validator,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// WithMetrics attaches a metrics collector.
func (h *APIHandler) WithMetrics(m *metrics.Collector) *APIHandler {
	h.metrics = m
	return h
}

// ListTypes handles GET /api/types.
func (h *APIHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types := h.registry.List()
	resources := make([]jsonapi.Resource, 0, len(types))
	for _, t := range types {
		resources = append(resources, typeResource(t))
	}
	writeResponse(w, h.logger, jsonapi.NewCollectionDocument(resources, nil), http.StatusOK)
}

// GetType handles GET /api/types/{directory}.
func (h *APIHandler) GetType(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookupType(w, r)
	if !ok {
		return
	}
	writeResponse(w, h.logger, jsonapi.NewDocument().DataResource(typeResource(t)).Build(), http.StatusOK)
}

// ListPublications handles GET /api/types/{directory}/publications.
func (h *APIHandler) ListPublications(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookupType(w, r)
	if !ok {
		return
	}

	pageNum := jsonapi.ParsePage(r.URL.Query())
	page, err := h.index.List(r.Context(), t, pageNum)
	if err != nil {
		h.logger.Error().Err(err).Str("type", t.Name).Msg("listing publications failed")
		writeError(w, h.logger, jsonapi.ErrInternal("listing publications failed"))
		return
	}

	resources := make([]jsonapi.Resource, 0, len(page.Records))
	for _, rec := range page.Records {
		resources = append(resources, jsonapi.NewResource("publication", rec.Identifier).
			Attrs(rec.Fields).
			Meta("rowId", rec.ID).
			Link("/api/types/"+t.Directory()+"/publications/"+basename(rec.Identifier)).
			Build())
	}

	var pagination *jsonapi.Pagination
	if t.PageSize > 0 {
		pagination = jsonapi.NewPagination(page.Total, page.Number, page.Size, r.URL.Path)
	}
	doc := jsonapi.NewCollectionDocument(resources, pagination)
	if pagination == nil {
		doc.Meta = jsonapi.Meta{"total": page.Total}
	}
	writeResponse(w, h.logger, doc, http.StatusOK)
}

// GetPublication handles GET /api/types/{directory}/publications/{identifier}.
func (h *APIHandler) GetPublication(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookupType(w, r)
	if !ok {
		return
	}

	id := document.NormalizeIdentifier(t.Directory(), chi.URLParam(r, "identifier"))
	doc, err := h.docs.Load(id)
	if err != nil {
		writeError(w, h.logger, jsonapi.ErrNotFoundWithID("publication", id))
		return
	}

	res := jsonapi.NewResource("publication", doc.Identifier)
	for _, key := range doc.Matter.Keys() {
		v, _ := doc.Matter.Get(key)
		res.Attr(key, v)
	}
	res.Attr("body", doc.Body)
	writeResponse(w, h.logger, jsonapi.NewDocument().DataResource(res.Build()).Build(), http.StatusOK)
}

// ValidatePublication handles POST /api/types/{directory}/validate. The
// request body is a JSON object mapping field names to values.
func (h *APIHandler) ValidatePublication(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookupType(w, r)
	if !ok {
		return
	}

	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeError(w, h.logger, jsonapi.ErrBadRequest("request body must be a JSON object of field values"))
		return
	}

	matter := document.NewMatter()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		matter.Set(k, values[k])
	}

	result, err := h.validator.ValidateRecord(t, matter)
	if err != nil {
		var empty *validation.EmptyOptionsError
		if errors.As(err, &empty) {
			h.recordValidation(t.Name, "error")
			writeError(w, h.logger, jsonapi.ErrConflict(empty.Error()))
			return
		}
		h.logger.Error().Err(err).Str("type", t.Name).Msg("validation failed")
		writeError(w, h.logger, jsonapi.ErrInternal("validation failed"))
		return
	}

	if !result.Valid {
		h.recordValidation(t.Name, "invalid")
		errs := make([]jsonapi.Error, 0, len(result.Errors))
		for _, e := range result.Errors {
			if h.metrics != nil {
				h.metrics.ValidationFailures.WithLabelValues(t.Name, e.Rule).Inc()
			}
			errs = append(errs, jsonapi.ErrValidation(e.Field, e.Message))
		}
		if err := jsonapi.Write(w, http.StatusUnprocessableEntity, jsonapi.NewErrorDocument(errs...)); err != nil {
			h.logger.Error().Err(err).Msg("failed to write response")
		}
		return
	}

	h.recordValidation(t.Name, "valid")
	res := jsonapi.NewResource("validation-result", t.Name).
		Attr("valid", true).
		Build()
	writeResponse(w, h.logger, jsonapi.NewDocument().DataResource(res).Build(), http.StatusOK)
}

// ListTags handles GET /api/tags.
func (h *APIHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	vocab, err := h.vocab.Load()
	if err != nil {
		h.logger.Error().Err(err).Msg("loading tag vocabulary failed")
		writeError(w, h.logger, jsonapi.ErrInternal("loading tag vocabulary failed"))
		return
	}

	groups := vocab.GroupNames()
	resources := make([]jsonapi.Resource, 0, len(groups))
	for _, g := range groups {
		resources = append(resources, jsonapi.NewResource("tag-group", g).
			Attr("values", vocab.ValuesFor(g)).
			Build())
	}
	writeResponse(w, h.logger, jsonapi.NewCollectionDocument(resources, nil), http.StatusOK)
}

func (h *APIHandler) lookupType(w http.ResponseWriter, r *http.Request) (*schema.PublicationType, bool) {
	dir := chi.URLParam(r, "directory")
	t, ok := h.registry.GetByDirectory(dir)
	if !ok {
		writeError(w, h.logger, jsonapi.ErrNotFoundWithID("publication type", dir))
		return nil, false
	}
	return t, true
}

func (h *APIHandler) recordValidation(typeName, outcome string) {
	if h.metrics != nil {
		h.metrics.ValidationsTotal.WithLabelValues(typeName, outcome).Inc()
	}
}

func typeResource(t *schema.PublicationType) jsonapi.Resource {
	fields := make([]map[string]any, 0, len(t.Fields))
	for _, f := range t.Fields {
		fm := map[string]any{
			"type": string(f.Type),
			"name": f.Name,
		}
		if len(f.Rules) > 0 {
			fm["rules"] = f.Rules
		}
		if f.TagGroup != "" {
			fm["tagGroup"] = f.TagGroup
		}
		fields = append(fields, fm)
	}

	return jsonapi.NewResource("publication-type", t.Name).
		Attr("name", t.Name).
		Attr("directory", t.Directory()).
		Attr("canonicalField", t.CanonicalField).
		Attr("sortField", t.SortField).
		Attr("sortAscending", t.SortAscending).
		Attr("pageSize", t.PageSize).
		Attr("fields", fields).
		Link("/api/types/" + t.Directory()).
		Build()
}

func basename(identifier string) string {
	for i := len(identifier) - 1; i >= 0; i-- {
		if identifier[i] == '/' {
			return identifier[i+1:]
		}
	}
	return identifier
}

func writeResponse(w http.ResponseWriter, logger zerolog.Logger, doc jsonapi.Document, status int) {
	if err := jsonapi.Write(w, status, doc); err != nil {
		logger.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, apiErr jsonapi.Error) {
	if err := jsonapi.WriteError(w, apiErr); err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
