package model

// AssetRef points at one remote-stored binary owned by a document. Key is the
// object key in the remote store (used for replacement and deletion), URL is a
// retrieval URL handed straight to clients. A persisted non-nil ref implies the
// remote object exists, except in the narrow window between a failed cleanup
// and the next reconciliation.
type AssetRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
