package filter

import (
	"net/url"
	"strings"
)

// PageParam is the lookup parameter holding the current page.
const PageParam = "p"

// ChangeList holds the lookup parameters of a single change list request.
type ChangeList struct {
	params url.Values
}

// NewChangeList creates a new change list from the query of a request.
// The page parameter is not retained.
func NewChangeList(query url.Values) *ChangeList {
	params := cloneValues(query)
	params.Del(PageParam)
	return &ChangeList{params: params}
}

// Params returns a copy of the lookup parameters.
func (cl *ChangeList) Params() url.Values {
	return cloneValues(cl.params)
}

// QueryString returns a query string, including a leading '?', derived from the current parameters.
//
// First every parameter starting with any of remove is deleted, then the parameters in set are added.
// The parameters of cl are not modified.
func (cl *ChangeList) QueryString(set map[string]string, remove ...string) string {
	params := cloneValues(cl.params)
	for key := range params {
		for _, prefix := range remove {
			if strings.HasPrefix(key, prefix) {
				params.Del(key)
				break
			}
		}
	}
	for key, value := range set {
		params.Set(key, value)
	}
	return "?" + params.Encode()
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for key, value := range values {
		clone[key] = append([]string(nil), value...)
	}
	return clone
}
