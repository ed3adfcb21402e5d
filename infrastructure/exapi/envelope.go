package exapi

// SuccessCode is the envelope code of a successful page.
const SuccessCode = "SUCCESS"

// Envelope is the paging wrapper around every listing response.
type Envelope[T any] struct {
	Code      Text  `json:"code"`
	Message   Text  `json:"message"`
	Count     Count `json:"count"`
	List      []T   `json:"list"`
	PageNo    Count `json:"pageNo"`
	NumOfRows Count `json:"numOfRows"`
	PageSize  Count `json:"pageSize"`
}

// OK reports whether the envelope carries a success code.
func (e Envelope[T]) OK() bool { return e.Code.String() == SuccessCode }
