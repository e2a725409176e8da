package boxes

import (
	"encoding/json"
	"sort"

	"qirc/internal/qerrors"
)

// Codec pairs the serialization functions registered for one operator
// type tag.
type Codec struct {
	Encode func(Box) ([]byte, error)
	Decode func([]byte) (Box, error)
}

// registry is the process-wide operator factory. It is populated by
// package init functions and read-only afterwards.
var registry = map[string]Codec{}

// Register installs a codec under a type tag. Called from init only.
func Register(tag string, codec Codec) {
	registry[tag] = codec
}

// RegisteredTags returns the sorted registered type tags.
func RegisteredTags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ToJSON serializes a box through its registered codec.
func ToJSON(b Box) ([]byte, error) {
	codec, ok := registry[b.TypeTag()]
	if !ok {
		return nil, qerrors.New(qerrors.UnknownOperator, "no codec registered for %q", b.TypeTag())
	}
	return codec.Encode(b)
}

// FromJSON inspects the "type" field and dispatches to the registered
// decoder.
func FromJSON(data []byte) (Box, error) {
	var head struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid operator JSON")
	}
	if head.Type == nil {
		return nil, qerrors.New(qerrors.MalformedJson, "operator JSON missing \"type\" field")
	}
	codec, ok := registry[*head.Type]
	if !ok {
		return nil, qerrors.New(qerrors.UnknownOperator, "unknown operator type %q", *head.Type)
	}
	return codec.Decode(data)
}
