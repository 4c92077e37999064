package redfish

import "encoding/json"

// Response is the status and raw body of one controller request.
type Response struct {
	Status int
	Body   []byte
}

func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

func (r Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
