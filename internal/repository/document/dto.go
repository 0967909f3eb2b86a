package document

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Transition names follow the write's effect on the document.
const (
	transitionAppear    = "appear"
	transitionUpdate    = "update"
	transitionDisappear = "disappear"
)

// mutationMessage is published on the change channel after each write.
type mutationMessage struct {
	DocumentID string `json:"documentId"`
	Transition string `json:"transition"`
}

func encodeMutation(id domdoc.ID, transition string) ([]byte, error) {
	return json.Marshal(mutationMessage{DocumentID: id.String(), Transition: transition})
}

// decodeMutation parses a change message. On error the zero message is
// returned; callers still refetch since the write happened.
func decodeMutation(data []byte) (mutationMessage, error) {
	var m mutationMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return mutationMessage{}, fmt.Errorf("unmarshal change message: %w", err)
	}
	return m, nil
}

// decodeDocument parses a FT.SEARCH "$" payload. The body's _id wins over the
// id derived from the key.
func decodeDocument(keyID, payload string) (domdoc.Document, error) {
	if payload == "" {
		return domdoc.Reconstruct(keyID, map[string]any{domdoc.FieldID: keyID}), nil
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return domdoc.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if body == nil {
		body = make(map[string]any, 1)
	}

	id := keyID
	if raw, ok := body[domdoc.FieldID].(string); ok && raw != "" {
		id = raw
	} else {
		body[domdoc.FieldID] = keyID
	}
	return domdoc.Reconstruct(id, body), nil
}

// decodeJSONGetResult parses a JSON.GET "$" reply, which wraps the document in an array.
func decodeJSONGetResult(id domdoc.ID, raw []byte) (domdoc.Document, error) {
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domdoc.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if len(docs) == 0 || docs[0] == nil {
		return domdoc.Document{}, fmt.Errorf("empty JSON.GET reply for %s", id)
	}
	body := docs[0]
	body[domdoc.FieldID] = id.String()
	return domdoc.Reconstruct(id.String(), body), nil
}
