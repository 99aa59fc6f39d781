package api

import "encoding/json"

type Pipeline struct {
	ID             string
	Name           string
	Status         string
	Filter         string
	Transformation string
	Networks       []string
	CreatedAt      string
	UpdatedAt      string
	Summary        string
	Paused         *bool
	Raw            map[string]any
}

func (p Pipeline) Key() string   { return p.Name }
func (p Pipeline) Document() any { return p.Raw }

type PipelineList struct {
	Items []Pipeline
	Raw   json.RawMessage
}

type PipelineBackfillRequest struct {
	Network   string  `json:"network"`
	Value     string  `json:"value"`
	BeatStart *int64  `json:"beatStart,omitempty"`
	BeatEnd   *int64  `json:"beatEnd,omitempty"`
	Beats     []int64 `json:"beats,omitempty"`
}

// PipelineTestRequest targets exactly one of Beat or Hash.
type PipelineTestRequest struct {
	Network string `json:"network"`
	Beat    string `json:"beat,omitempty"`
	Hash    string `json:"hash,omitempty"`
}

type PipelineCreateRequest struct {
	Name           string   `json:"name"`
	Transformation string   `json:"transformation"`
	Filter         string   `json:"filter"`
	FilterKeys     []string `json:"filterKeys"`
	Networks       []string `json:"networks"`
	Delivery       Delivery `json:"delivery"`
}

type Delivery struct {
	Adapter    string     `json:"adapter"`
	Connection Connection `json:"connection"`
}

type Connection struct {
	Host    string            `json:"host"`
	Headers map[string]string `json:"headers,omitempty"`
}

type Filter struct {
	Name   string
	Values []string
	Raw    map[string]any
}

func (f Filter) Key() string   { return f.Name }
func (f Filter) Document() any { return f.Raw }

type FilterList struct {
	Items []Filter
	Raw   json.RawMessage
}

type FilterMutationRequest struct {
	Name   string   `json:"-"`
	Values []string `json:"values"`
}

type Transformation struct {
	Name      string
	Status    string
	Version   string
	Language  string
	Checksum  string
	CreatedAt string
	UpdatedAt string
	Raw       map[string]any
}

func (t Transformation) Key() string   { return t.Name }
func (t Transformation) Document() any { return t.Raw }

type TransformationList struct {
	Items []Transformation
	Raw   json.RawMessage
}

type TransformationTestRequest struct {
	Network string
	Beat    string
	Hash    string
	Code    string
}
