package query

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tsdbquery/planner/pkg/types"
)

// Node is the wire record for one operator in the submitted execution
// graph. A node with a non-empty SourceID decodes into a
// types.DataSourceConfig; every other node decodes into a plain
// types.Config (spec.md §3).
type Node struct {
	ID       string          `json:"id"`
	Type     string          `json:"type,omitempty"`
	Sources  []string        `json:"sources,omitempty"`
	PushDown bool            `json:"pushDown,omitempty"`
	Joins    bool            `json:"joins,omitempty"`
	SourceID string          `json:"sourceId,omitempty"`
	Filter   json.RawMessage `json:"filter,omitempty"`
}

// ExecutionGraph is the decoded, still-logical query: the node set the
// planner turns into its initial config graph, plus the sink filter
// directives from spec.md §4.2.
type ExecutionGraph struct {
	Nodes       []Node
	SinkFilters []string
}

// FilterDecoder turns a node's raw filter payload into a types.Filter. The
// zero value decodes every filter to a types.NoopFilter{}, since the
// concrete serde-filter shape is an external collaborator this module does
// not define (spec.md §1: "serde configuration parsing" is out of scope).
type FilterDecoder func(raw json.RawMessage) (types.Filter, error)

func defaultFilterDecoder(raw json.RawMessage) (types.Filter, error) {
	return types.NoopFilter{}, nil
}

// wirePayload mirrors ExecutionGraph's JSON shape for decoding.
type wirePayload struct {
	Nodes       []Node   `json:"nodes"`
	SinkFilters []string `json:"sinkFilters"`
}

// Parse validates raw against payloadSchema and decodes it into an
// ExecutionGraph. Schema validation only checks wire-level shape; it does
// not catch duplicate ids, cycles, or malformed filter strings, which are
// the planner's responsibility.
func Parse(raw []byte) (*ExecutionGraph, error) {
	schemaLoader := gojsonschema.NewStringLoader(payloadSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("query: schema validation failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("query: payload does not satisfy schema: %v", msgs)
	}

	var wp wirePayload
	if err := json.Unmarshal(raw, &wp); err != nil {
		return nil, fmt.Errorf("query: decode payload: %w", err)
	}

	return &ExecutionGraph{Nodes: wp.Nodes, SinkFilters: wp.SinkFilters}, nil
}

// ToOperatorConfig decodes one wire node into an OperatorConfig, resolving
// its filter with decode (defaultFilterDecoder if nil).
func ToOperatorConfig(n Node, decode FilterDecoder) (types.OperatorConfig, error) {
	if decode == nil {
		decode = defaultFilterDecoder
	}
	if n.SourceID == "" {
		return types.NewConfig(n.ID, n.Type, n.Sources, n.PushDown, n.Joins), nil
	}

	filter, err := decode(n.Filter)
	if err != nil {
		return nil, fmt.Errorf("query: node %q: decode filter: %w", n.ID, err)
	}
	return types.NewSource(n.ID, n.SourceID, n.Sources, n.PushDown, filter), nil
}
