package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Reference is a field another collection owns: depending on whether the
// caller populated it, the wire form is either a bare ObjectID or the
// expanded document. ID normalizes both forms.
type Reference[T any] struct {
	id  primitive.ObjectID
	doc *T
}

// Ref builds a Reference holding just the id.
func Ref[T any](id primitive.ObjectID) Reference[T] {
	return Reference[T]{id: id}
}

// ExpandedRef builds a Reference carrying the populated document.
func ExpandedRef[T any](id primitive.ObjectID, doc *T) Reference[T] {
	return Reference[T]{id: id, doc: doc}
}

func (r Reference[T]) ID() primitive.ObjectID {
	return r.id
}

func (r Reference[T]) Doc() (*T, bool) {
	return r.doc, r.doc != nil
}

func (r Reference[T]) IsZero() bool {
	return r.id.IsZero() && r.doc == nil
}

// The persisted form is always the bare id; expansion is a read-side concern.
func (r Reference[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.id)
}

func (r *Reference[T]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeObjectID:
		oid, _, ok := bsoncore.ReadObjectID(data)
		if !ok {
			return fmt.Errorf("reference: malformed ObjectID value")
		}
		r.id = oid
		r.doc = nil
		return nil
	case bson.TypeEmbeddedDocument:
		var doc T
		if err := bson.Unmarshal(data, &doc); err != nil {
			return err
		}
		var header struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := bson.Unmarshal(data, &header); err != nil {
			return err
		}
		r.id = header.ID
		r.doc = &doc
		return nil
	case bson.TypeNull:
		*r = Reference[T]{}
		return nil
	default:
		return fmt.Errorf("reference: cannot decode BSON type %s", t)
	}
}

// JSON keeps whichever form the Reference holds, so populated API responses
// carry the document while bare references stay a hex id string.
func (r Reference[T]) MarshalJSON() ([]byte, error) {
	if r.doc != nil {
		return json.Marshal(r.doc)
	}
	return json.Marshal(r.id)
}

func (r *Reference[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Reference[T]{}
		return nil
	}
	if trimmed[0] == '"' {
		var hex string
		if err := json.Unmarshal(trimmed, &hex); err != nil {
			return err
		}
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		r.id = oid
		r.doc = nil
		return nil
	}
	var doc T
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	var header struct {
		ID primitive.ObjectID `json:"id"`
	}
	if err := json.Unmarshal(trimmed, &header); err != nil {
		return err
	}
	r.id = header.ID
	r.doc = &doc
	return nil
}
