package httpclient

import "github.com/kbukum/gladiaflow/provider"

var (
	_ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)
	_ provider.Closeable                           = (*Adapter)(nil)
)
