package command

import (
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// fields is a msgpack map that keeps insertion order, so equal payloads
// encode to equal bytes.
type fields struct {
	keys   []string
	values []interface{}
}

func (f *fields) set(key string, value interface{}) {
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
}

// setID writes nil for uuid.Nil.
func (f *fields) setID(key string, id uuid.UUID) {
	if id == uuid.Nil {
		f.set(key, nil)
	} else {
		f.set(key, id.String())
	}
}

// setOptionalID leaves the key out for uuid.Nil.
func (f *fields) setOptionalID(key string, id uuid.UUID) {
	if id != uuid.Nil {
		f.set(key, id.String())
	}
}

func (f fields) len() int {
	return len(f.keys)
}

func (f fields) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(f.keys)); err != nil {
		return err
	}
	for i, key := range f.keys {
		if err := enc.EncodeString(key); err != nil {
			return err
		}
		if err := enc.Encode(f.values[i]); err != nil {
			return err
		}
	}
	return nil
}
