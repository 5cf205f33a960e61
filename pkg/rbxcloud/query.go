package rbxcloud

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is a single URL query parameter.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered sequence of URL query parameters. Unlike url.Values it
// preserves insertion order, so an encoded query decodes back to the
// identical pair sequence.
type Query []QueryParam

// NewQuery creates an empty query.
func NewQuery() Query {
	return Query{}
}

// With appends a parameter and returns the query for chaining.
func (q Query) With(key, value string) Query {
	return append(q, QueryParam{Key: key, Value: value})
}

// Encode serializes the query in insertion order, percent-escaped, without a
// leading "?". An empty query encodes to "".
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	var builder strings.Builder

	for i, param := range q {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}

	return builder.String()
}

// ParseQuery decodes an encoded query string back into ordered pairs.
func ParseQuery(encoded string) (Query, error) {
	if encoded == "" {
		return Query{}, nil
	}

	query := Query{}

	for _, pair := range strings.Split(encoded, "&") {
		key, value, _ := strings.Cut(pair, "=")

		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}

		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}

		query = append(query, QueryParam{Key: decodedKey, Value: decodedValue})
	}

	return query, nil
}

// ListOptions expresses the common single-page list parameters. The client
// never follows cursors on its own; a caller wanting multiple pages issues
// independent calls feeding NextPageCursor back in as Cursor.
type ListOptions struct {
	// Limit is the page size. Nil means the server default; each resource
	// client enforces a range of [1, max] before any request is issued, so
	// an explicit zero is rejected rather than sent.
	Limit *int

	// Cursor resumes a listing from a previous page.
	Cursor string

	// Prefix filters results by name prefix where the endpoint supports it.
	Prefix string
}

// NewListOptions creates empty list options.
func NewListOptions() *ListOptions {
	return &ListOptions{}
}

// WithLimit sets an explicit page size.
func (o *ListOptions) WithLimit(limit int) *ListOptions {
	o.Limit = &limit

	return o
}

// WithCursor sets the resume cursor.
func (o *ListOptions) WithCursor(cursor string) *ListOptions {
	o.Cursor = cursor

	return o
}

// WithPrefix sets the name prefix filter.
func (o *ListOptions) WithPrefix(prefix string) *ListOptions {
	o.Prefix = prefix

	return o
}

// toQuery renders the options as ordered query parameters using the given
// field names; limitKey and cursorKey differ between API generations
// (limit/cursor vs pageSize/pageToken).
func (o *ListOptions) toQuery(limitKey, cursorKey string) Query {
	query := NewQuery()

	if o == nil {
		return query
	}

	if o.Limit != nil {
		query = query.With(limitKey, strconv.Itoa(*o.Limit))
	}

	if o.Cursor != "" {
		query = query.With(cursorKey, o.Cursor)
	}

	if o.Prefix != "" {
		query = query.With("prefix", o.Prefix)
	}

	return query
}

// ToQuery renders the options with the modern limit/cursor field names.
func (o *ListOptions) ToQuery() Query {
	return o.toQuery("limit", "cursor")
}

// ToPageQuery renders the options with the pageSize/pageToken field names
// used by the developer products API.
func (o *ListOptions) ToPageQuery() Query {
	return o.toQuery("pageSize", "pageToken")
}
