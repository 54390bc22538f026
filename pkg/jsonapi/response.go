package jsonapi

import (
	"encoding/json"
	"net/http"
)

// Write serializes a Document with the JSON:API content type and the given
// status code.
func Write(w http.ResponseWriter, status int, doc Document) error {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(doc)
}

// WriteResource writes a single resource document with a 200 status.
func WriteResource(w http.ResponseWriter, r Resource) error {
	return Write(w, http.StatusOK, NewDocument().DataResource(r).Build())
}

// WriteCollection writes a collection document, optionally paginated, with a
// 200 status.
func WriteCollection(w http.ResponseWriter, resources []Resource, pagination *Pagination) error {
	return Write(w, http.StatusOK, NewCollectionDocument(resources, pagination))
}

// WriteError writes an error document using the error's own HTTP status.
func WriteError(w http.ResponseWriter, err Error) error {
	return Write(w, err.StatusCode(), NewErrorDocument(err))
}

// WriteErrors writes multiple errors in one document. The response status is
// the highest status among the errors, or 500 when the list is empty.
func WriteErrors(w http.ResponseWriter, errors ...Error) error {
	status := http.StatusInternalServerError
	if len(errors) > 0 {
		status = 0
		for _, e := range errors {
			if c := e.StatusCode(); c > status {
				status = c
			}
		}
		if status == 0 {
			status = http.StatusInternalServerError
		}
	}
	return Write(w, status, NewErrorDocument(errors...))
}
