package client

import (
	"fmt"

	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/tidwall/gjson"
)

// Pagination describes a server side page.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// Envelope is the response wrapper shared by every endpoint:
// {success, data, error, message, count, pagination}.
type Envelope struct {
	Success    bool
	Data       gjson.Result
	Error      string
	Message    string
	Count      int
	Pagination *Pagination
	raw        string
}

// ParseEnvelope decodes a response body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrBadResponse)
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrBadResponse, res.Type)
	}

	ok := res.Get("success")
	env := Envelope{
		Success: !ok.Exists() || ok.Bool(),
		Data:    res.Get("data"),
		Error:   res.Get("error").String(),
		Message: res.Get("message").String(),
		Count:   int(res.Get("count").Int()),
		raw:     res.Raw,
	}
	// Bare payloads such as /info carry no wrapper.
	if !ok.Exists() && !env.Data.Exists() {
		env.Data = res
	}
	if p := res.Get("pagination"); p.IsObject() {
		env.Pagination = &Pagination{
			Page:  int(p.Get("page").Int()),
			Limit: int(p.Get("limit").Int()),
			Total: int(p.Get("total").Int()),
		}
	}

	return &env, nil
}

// Raw returns the undecoded response body.
func (e *Envelope) Raw() string {
	return e.raw
}

// Root returns a top level field, e.g. the version of a health probe.
func (e *Envelope) Root(path string) gjson.Result {
	return gjson.Get(e.raw, path)
}

// Rows converts the data payload into rows. An object yields a single row,
// null or a missing payload yields none. Numbers decode as float64.
func (e *Envelope) Rows() (model1.Rows, error) {
	switch {
	case !e.Data.Exists() || e.Data.Type == gjson.Null:
		return model1.Rows{}, nil
	case e.Data.IsObject():
		return model1.Rows{asRow(e.Data)}, nil
	case e.Data.IsArray():
		items := e.Data.Array()
		rr := make(model1.Rows, 0, len(items))
		for i, it := range items {
			if !it.IsObject() {
				return nil, fmt.Errorf("%w: data[%d] is not an object", ErrBadResponse, i)
			}
			rr = append(rr, asRow(it))
		}
		return rr, nil
	}

	return nil, fmt.Errorf("%w: unexpected data type %s", ErrBadResponse, e.Data.Type)
}

// Row returns the single object payload.
func (e *Envelope) Row() (model1.Row, error) {
	if !e.Data.IsObject() {
		return nil, fmt.Errorf("%w: expected an object payload", ErrBadResponse)
	}
	return asRow(e.Data), nil
}

// Strings returns an array payload of strings, e.g. categories.
func (e *Envelope) Strings() []string {
	items := e.Data.Array()
	ss := make([]string, 0, len(items))
	for _, it := range items {
		ss = append(ss, it.String())
	}
	return ss
}

// Get returns a data field using a gjson path, e.g. "total_revenue".
func (e *Envelope) Get(path string) gjson.Result {
	return e.Data.Get(path)
}

func asRow(r gjson.Result) model1.Row {
	m, _ := r.Value().(map[string]any)
	if m == nil {
		return model1.Row{}
	}
	return model1.Row(m)
}
